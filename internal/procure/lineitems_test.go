package procure

import (
	"math"
	"testing"
	"time"
)

func generateThroughItems(t *testing.T, seed uint64) *Generator {
	t.Helper()
	g := generateThroughHeaders(t, seed)
	if err := g.GenerateLineItems(); err != nil {
		t.Fatalf("GenerateLineItems failed: %v", err)
	}
	return g
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestContractIndexAsOf(t *testing.T) {
	contracts := []Contract{
		{ID: "C1", VendorCode: "V1", ValidFrom: day(2021, 1, 1), ValidTo: day(2022, 1, 1)},
		{ID: "C2", VendorCode: "V1", ValidFrom: day(2021, 6, 1), ValidTo: day(2023, 6, 1)},
		{ID: "C3", VendorCode: "V2", ValidFrom: day(2020, 1, 1), ValidTo: day(2021, 1, 1)},
	}
	idx := newContractIndex(contracts)

	// Before any contract starts
	if c := idx.AsOf("V1", day(2020, 12, 31)); c != nil {
		t.Errorf("Expected no contract before validity, got %s", c.ID)
	}
	// Only C1 started
	if c := idx.AsOf("V1", day(2021, 3, 1)); c == nil || c.ID != "C1" {
		t.Errorf("Expected C1, got %v", c)
	}
	// Both started: latest start wins
	if c := idx.AsOf("V1", day(2021, 7, 1)); c == nil || c.ID != "C2" {
		t.Errorf("Expected C2, got %v", c)
	}
	// C2 covers after C1 expired
	if c := idx.AsOf("V1", day(2022, 6, 1)); c == nil || c.ID != "C2" {
		t.Errorf("Expected C2 after C1 expiry, got %v", c)
	}
	// Latest candidate expired: no fallback to an earlier start
	if c := idx.AsOf("V1", day(2024, 1, 1)); c != nil {
		t.Errorf("Expected no contract after expiry, got %s", c.ID)
	}
	// Unknown vendor
	if c := idx.AsOf("V9", day(2021, 1, 1)); c != nil {
		t.Errorf("Expected no contract for unknown vendor, got %s", c.ID)
	}
}

func TestGenerateLineItems(t *testing.T) {
	g := generateThroughItems(t, 71)

	perOrder := make(map[string]int)
	for _, it := range g.items {
		perOrder[it.OrderNumber]++

		if it.Quantity < 0 {
			t.Errorf("Item %s-%d has negative quantity", it.OrderNumber, it.ItemNumber)
		}
		if got, want := it.NetValue, it.Quantity*it.UnitPrice; math.Abs(got-want) > 1e-9 {
			t.Errorf("Item %s-%d net value %v != %v", it.OrderNumber, it.ItemNumber, got, want)
		}
	}

	if len(perOrder) != len(g.headers) {
		t.Errorf("Expected every order to have items: %d of %d covered", len(perOrder), len(g.headers))
	}
	for order, n := range perOrder {
		if n < 1 || n > g.cfg.MaxItemsPerOrder {
			t.Errorf("Order %s has %d items outside [1, %d]", order, n, g.cfg.MaxItemsPerOrder)
		}
	}
}

func TestGenerateLineItemsNumbering(t *testing.T) {
	g := generateThroughItems(t, 73)

	next := make(map[string]int32)
	for _, it := range g.items {
		want := next[it.OrderNumber] + 10
		if it.ItemNumber != want {
			t.Fatalf("Order %s item number %d, want %d", it.OrderNumber, it.ItemNumber, want)
		}
		next[it.OrderNumber] = it.ItemNumber
	}
}

func TestGenerateLineItemsDeliveryDates(t *testing.T) {
	g := generateThroughItems(t, 79)

	orderDates := make(map[string]time.Time)
	for _, h := range g.headers {
		orderDates[h.OrderNumber] = h.OrderDate
	}
	for _, it := range g.items {
		lead := int(it.DeliveryDate.Sub(orderDates[it.OrderNumber]).Hours() / 24)
		if lead < 5 || lead > 29 {
			t.Errorf("Item %s-%d lead time %d days outside [5, 29]", it.OrderNumber, it.ItemNumber, lead)
		}
	}
}

func TestGenerateLineItemsContractPricing(t *testing.T) {
	g := generateThroughItems(t, 83)

	contractByID := make(map[string]*Contract)
	for i := range g.contracts {
		contractByID[g.contracts[i].ID] = &g.contracts[i]
	}
	headerByOrder := make(map[string]*OrderHeader)
	for i := range g.headers {
		headerByOrder[g.headers[i].OrderNumber] = &g.headers[i]
	}

	var matched int
	for _, it := range g.items {
		if it.ContractID == "" {
			continue
		}
		matched++

		c, ok := contractByID[it.ContractID]
		if !ok {
			t.Fatalf("Item %s-%d references unknown contract %s", it.OrderNumber, it.ItemNumber, it.ContractID)
		}
		h := headerByOrder[it.OrderNumber]
		if h.OrderType != OrderTypeContract {
			t.Errorf("Spot order %s carries contract reference", it.OrderNumber)
		}
		if c.VendorCode != h.VendorCode {
			t.Errorf("Item %s-%d contract vendor %s != order vendor %s",
				it.OrderNumber, it.ItemNumber, c.VendorCode, h.VendorCode)
		}
		if h.OrderDate.Before(c.ValidFrom) || h.OrderDate.After(c.ValidTo) {
			t.Errorf("Order %s dated %v outside contract %s validity", it.OrderNumber, h.OrderDate, c.ID)
		}
		if c.MaterialCode != it.MaterialCode {
			t.Errorf("Item %s-%d material %s != contract material %s",
				it.OrderNumber, it.ItemNumber, it.MaterialCode, c.MaterialCode)
		}
		// Price stays within 5% of the contract price (sigma is 0.01)
		if dev := math.Abs(it.UnitPrice-c.Price) / c.Price; dev > 0.05 {
			t.Errorf("Item %s-%d deviates %v from contract price", it.OrderNumber, it.ItemNumber, dev)
		}
	}
	if matched == 0 {
		t.Error("No line items matched a contract")
	}
}

func TestGenerateLineItemsLargeOrders(t *testing.T) {
	g := generateThroughItems(t, 89)

	for h := range g.headers {
		header := &g.headers[h]
		if !header.IsLarge {
			continue
		}
		for _, it := range g.items {
			if it.OrderNumber != header.OrderNumber {
				continue
			}
			// Quantity was raised toward the value band; truncation can
			// undershoot the floor by at most one unit price
			floor := float64(g.cfg.LargeOrderValueRange[0])
			if it.NetValue+it.UnitPrice <= floor {
				t.Errorf("Large order item %s-%d value %v too far below band floor %v",
					it.OrderNumber, it.ItemNumber, it.NetValue, floor)
			}
		}
	}
}
