package procure

import (
	"regexp"
	"strings"
	"testing"
)

var materialCodeRe = regexp.MustCompile(`^M\d{8}$`)

func TestGenerateMaterials(t *testing.T) {
	g := newTestGenerator(t, 21)
	g.GenerateMaterials()

	if len(g.materials) != 100 {
		t.Fatalf("Expected 100 materials, got %d", len(g.materials))
	}

	seen := make(map[string]bool)
	for _, m := range g.materials {
		if !materialCodeRe.MatchString(m.Code) {
			t.Errorf("Bad material code %q", m.Code)
		}
		if seen[m.Code] {
			t.Errorf("Duplicate material code %q", m.Code)
		}
		seen[m.Code] = true

		if m.Category == "" {
			t.Error("Material category is empty")
		}
		if !strings.HasPrefix(m.Description, m.Category+" - ") {
			t.Errorf("Description %q does not lead with category %q", m.Description, m.Category)
		}
		if m.BasePrice <= 0 {
			t.Errorf("Material %s has non-positive base price %v", m.Code, m.BasePrice)
		}
	}
}

func TestGenerateMaterialsCategoryPartition(t *testing.T) {
	g := newTestGenerator(t, 23)
	g.GenerateMaterials()

	byType := make(map[string]int)
	for _, m := range g.materials {
		byType[m.Type]++
	}

	// Shares over 100: FERT 20, HALB 15, HAWA 30, ROH 25, DIEN the rest
	if byType["FERT"] != 20 {
		t.Errorf("FERT count %d, want 20", byType["FERT"])
	}
	if byType["HALB"] != 15 {
		t.Errorf("HALB count %d, want 15", byType["HALB"])
	}
	if byType["HAWA"] != 30 {
		t.Errorf("HAWA count %d, want 30", byType["HAWA"])
	}
	if byType["ROH"] != 25 {
		t.Errorf("ROH count %d, want 25", byType["ROH"])
	}
	if byType["DIEN"] != 10 {
		t.Errorf("DIEN count %d, want 10 (remainder)", byType["DIEN"])
	}
}

func TestGenerateMaterialsMergedElectronics(t *testing.T) {
	g := newTestGenerator(t, 23)
	g.GenerateMaterials()

	// Both electronics pools publish the same category
	for _, m := range g.materials {
		if m.Type == "FERT" || m.Type == "HALB" {
			if m.Category != "ELECT" {
				t.Errorf("Electronics material %s has category %q", m.Code, m.Category)
			}
		}
	}
}

func TestGenerateMaterialsWeights(t *testing.T) {
	g := newTestGenerator(t, 29)
	g.GenerateMaterials()

	for _, m := range g.materials {
		if m.Type == "DIEN" {
			if m.GrossWeight != 0 || m.NetWeight != 0 {
				t.Errorf("Service material %s has weight %v/%v", m.Code, m.GrossWeight, m.NetWeight)
			}
			continue
		}
		if m.GrossWeight <= 0 {
			t.Errorf("Material %s has non-positive gross weight", m.Code)
		}
		if m.NetWeight >= m.GrossWeight {
			t.Errorf("Material %s net weight %v not below gross %v", m.Code, m.NetWeight, m.GrossWeight)
		}
	}
}

func TestGenerateMaterialsPriceRanges(t *testing.T) {
	g := newTestGenerator(t, 31)
	g.GenerateMaterials()

	// Price bounds by material type, from the default category table
	bounds := map[string][2]float64{
		"FERT": {1000, 10000},
		"HALB": {100, 1000},
		"HAWA": {1, 500},
		"ROH":  {50, 5000},
		"DIEN": {500, 50000},
	}
	for _, m := range g.materials {
		b := bounds[m.Type]
		if m.BasePrice < b[0] || m.BasePrice >= b[1] {
			t.Errorf("Material %s (%s) price %v outside [%v, %v)", m.Code, m.Type, m.BasePrice, b[0], b[1])
		}
	}
}
