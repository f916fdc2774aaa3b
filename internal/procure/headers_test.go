package procure

import (
	"regexp"
	"testing"
	"time"
)

var orderNumberRe = regexp.MustCompile(`^PO\d{8}$`)

func generateThroughHeaders(t *testing.T, seed uint64) *Generator {
	t.Helper()
	g := generateThroughContracts(t, seed)
	if err := g.GenerateHeaders(); err != nil {
		t.Fatalf("GenerateHeaders failed: %v", err)
	}
	return g
}

func TestGenerateHeaders(t *testing.T) {
	g := generateThroughHeaders(t, 51)

	if len(g.headers) != 200 {
		t.Fatalf("Expected 200 headers, got %d", len(g.headers))
	}

	currencies := map[string]bool{"USD": true, "EUR": true, "GBP": true}
	for _, h := range g.headers {
		if !orderNumberRe.MatchString(h.OrderNumber) {
			t.Errorf("Bad order number %q", h.OrderNumber)
		}
		if h.OrderDate.Before(g.start) || h.OrderDate.After(g.end) {
			t.Errorf("Order %s dated %v outside simulation window", h.OrderNumber, h.OrderDate)
		}
		if h.OrderType != OrderTypeContract && h.OrderType != OrderTypeSpot {
			t.Errorf("Order %s has unknown type %q", h.OrderNumber, h.OrderType)
		}
		if !currencies[h.Currency] {
			t.Errorf("Order %s has unknown currency %q", h.OrderNumber, h.Currency)
		}
		if !h.DocumentDate.Equal(h.OrderDate) {
			t.Errorf("Order %s document date %v differs from order date %v",
				h.OrderNumber, h.DocumentDate, h.OrderDate)
		}
	}
}

func TestGenerateHeadersBlockedVendorWindow(t *testing.T) {
	g := generateThroughHeaders(t, 53)

	blocked := make(map[string]bool)
	for _, v := range g.vendors {
		if v.Blocked == BlockedFlag {
			blocked[v.Code] = true
		}
	}
	cutoff := g.end.AddDate(0, 0, -g.cfg.BlockedWindowDays)
	for _, h := range g.headers {
		if blocked[h.VendorCode] && !h.OrderDate.Before(cutoff) {
			t.Errorf("Order %s for blocked vendor %s dated %v inside trailing window",
				h.OrderNumber, h.VendorCode, h.OrderDate)
		}
	}
}

func TestGenerateHeadersContractShare(t *testing.T) {
	cfg := testConfig()
	cfg.NumOrders = 2000
	g := newTestGeneratorWithConfig(t, cfg, 59)
	g.GenerateVendors()
	g.GenerateMaterials()
	if err := g.GenerateContracts(); err != nil {
		t.Fatal(err)
	}
	if err := g.GenerateHeaders(); err != nil {
		t.Fatal(err)
	}

	var contract int
	for _, h := range g.headers {
		if h.OrderType == OrderTypeContract {
			contract++
		}
	}
	rate := float64(contract) / float64(len(g.headers))
	// Per-order probability is drawn from [0.60, 0.95]; loose band
	if rate < 0.55 || rate > 0.90 {
		t.Errorf("Contract-type share %v outside expected band", rate)
	}
}

func TestGenerateHeadersQ4Seasonality(t *testing.T) {
	cfg := testConfig()
	cfg.NumOrders = 5000
	g := newTestGeneratorWithConfig(t, cfg, 61)
	g.GenerateVendors()
	g.GenerateMaterials()
	if err := g.GenerateContracts(); err != nil {
		t.Fatal(err)
	}
	if err := g.GenerateHeaders(); err != nil {
		t.Fatal(err)
	}

	var q4 int
	for _, h := range g.headers {
		if h.OrderDate.Month() >= time.October {
			q4++
		}
	}
	share := float64(q4) / float64(len(g.headers))
	// Q4 is ~25% of days weighted 1.3x, so its order share should land
	// around 30%
	if share < 0.26 || share > 0.36 {
		t.Errorf("Q4 order share %v outside boosted band", share)
	}
}
