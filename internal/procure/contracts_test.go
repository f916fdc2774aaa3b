package procure

import "testing"

func generateThroughContracts(t *testing.T, seed uint64) *Generator {
	t.Helper()
	g := newTestGenerator(t, seed)
	g.GenerateVendors()
	g.GenerateMaterials()
	if err := g.GenerateContracts(); err != nil {
		t.Fatalf("GenerateContracts failed: %v", err)
	}
	return g
}

func TestGenerateContracts(t *testing.T) {
	g := generateThroughContracts(t, 41)

	if len(g.contracts) == 0 {
		t.Fatal("No contracts generated")
	}
	if len(g.contracts) > 40 {
		t.Fatalf("Contract count %d over target 40", len(g.contracts))
	}

	pairs := make(map[[2]string]bool)
	for _, c := range g.contracts {
		pair := [2]string{c.VendorCode, c.MaterialCode}
		if pairs[pair] {
			t.Errorf("Duplicate (vendor, material) pair %v", pair)
		}
		pairs[pair] = true

		if c.Type != ContractBlanket && c.Type != ContractSpot && c.Type != ContractFramework {
			t.Errorf("Contract %s has unknown type %q", c.ID, c.Type)
		}
		if c.VolumeCommitment < 100 || c.VolumeCommitment > 9999 {
			t.Errorf("Contract %s volume %d outside [100, 9999]", c.ID, c.VolumeCommitment)
		}
	}
}

func TestGenerateContractsValidity(t *testing.T) {
	g := generateThroughContracts(t, 43)

	latestStart := g.end.AddDate(0, 0, -g.cfg.ContractRunwayDays)
	for _, c := range g.contracts {
		if c.ValidFrom.Before(g.start) || c.ValidFrom.After(latestStart) {
			t.Errorf("Contract %s starts %v outside [%v, %v]", c.ID, c.ValidFrom, g.start, latestStart)
		}
		if !c.ValidTo.After(c.ValidFrom) {
			t.Errorf("Contract %s ends %v before start %v", c.ID, c.ValidTo, c.ValidFrom)
		}
		days := int(c.ValidTo.Sub(c.ValidFrom).Hours() / 24)
		if days < 365 || days > 1095 {
			t.Errorf("Contract %s duration %d days outside [365, 1095]", c.ID, days)
		}
	}
}

func TestGenerateContractsDiscountedPrice(t *testing.T) {
	g := generateThroughContracts(t, 47)

	baseByCode := make(map[string]float64)
	for _, m := range g.materials {
		baseByCode[m.Code] = m.BasePrice
	}
	for _, c := range g.contracts {
		base := baseByCode[c.MaterialCode]
		ratio := c.Price / base
		// Discount range 5-15% off the base price
		if ratio < 0.85 || ratio >= 0.95 {
			t.Errorf("Contract %s price ratio %v outside [0.85, 0.95)", c.ID, ratio)
		}
	}
}

func TestGenerateContractsZeroTarget(t *testing.T) {
	cfg := testConfig()
	cfg.NumContracts = 0
	g := newTestGeneratorWithConfig(t, cfg, 1)
	g.GenerateVendors()
	g.GenerateMaterials()
	if err := g.GenerateContracts(); err != nil {
		t.Fatalf("GenerateContracts failed: %v", err)
	}
	if len(g.contracts) != 0 {
		t.Errorf("Expected no contracts, got %d", len(g.contracts))
	}
}
