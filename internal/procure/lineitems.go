//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package procure

import (
	"sort"
	"time"

	"github.com/procdata/procgen/internal/datagen"
	"github.com/procdata/procgen/internal/logging"
)

// contractIndex supports as-of lookups: for a vendor and a reference date,
// find the contract with the latest validity start at or before that date.
type contractIndex struct {
	byVendor map[string][]*Contract
}

// newContractIndex builds the per-vendor index, sorted by validity start.
func newContractIndex(contracts []Contract) *contractIndex {
	idx := &contractIndex{byVendor: make(map[string][]*Contract)}
	for i := range contracts {
		c := &contracts[i]
		idx.byVendor[c.VendorCode] = append(idx.byVendor[c.VendorCode], c)
	}
	for _, list := range idx.byVendor {
		sort.Slice(list, func(i, j int) bool {
			if !list[i].ValidFrom.Equal(list[j].ValidFrom) {
				return list[i].ValidFrom.Before(list[j].ValidFrom)
			}
			return list[i].ID < list[j].ID
		})
	}
	return idx
}

// AsOf returns the vendor's contract with the latest ValidFrom at or
// before date whose validity window still covers it, or nil. The backward
// search ties to validity-start proximity, not an arbitrary match.
func (idx *contractIndex) AsOf(vendor string, date time.Time) *Contract {
	list := idx.byVendor[vendor]
	if len(list) == 0 {
		return nil
	}
	// First contract starting strictly after date.
	i := sort.Search(len(list), func(i int) bool {
		return list[i].ValidFrom.After(date)
	})
	if i == 0 {
		return nil
	}
	c := list[i-1]
	if date.After(c.ValidTo) {
		return nil
	}
	return c
}

// GenerateLineItems produces purchase order line items. Item counts per
// order are log-normal, clipped to [1, max]. Contract-type orders resolve
// material and price through the as-of contract match; spot orders and
// unmatched contract lines draw a uniform material at a noisy spot price,
// with the preferred-vendor discount applied. Large orders have their
// quantity raised, never lowered, toward the configured value band.
func (g *Generator) GenerateLineItems() error {
	if g.headers == nil {
		return stageError("line item", "order headers")
	}
	if g.materials == nil {
		return stageError("line item", "material master")
	}
	if g.contracts == nil {
		return stageError("line item", "contract book")
	}

	idx := newContractIndex(g.contracts)

	materialByCode := make(map[string]*Material, len(g.materials))
	for i := range g.materials {
		materialByCode[g.materials[i].Code] = &g.materials[i]
	}
	vendorByCode := make(map[string]*Vendor, len(g.vendors))
	for i := range g.vendors {
		vendorByCode[g.vendors[i].Code] = &g.vendors[i]
	}

	minPref, maxPref := g.cfg.PreferredPriceDiscount[0], g.cfg.PreferredPriceDiscount[1]
	minVal := float64(g.cfg.LargeOrderValueRange[0])
	maxVal := float64(g.cfg.LargeOrderValueRange[1])

	var items []LineItem
	var contractMatched int
	for h := range g.headers {
		header := &g.headers[h]
		vendor := vendorByCode[header.VendorCode]

		count := int(g.stream.LogNormal(g.cfg.ItemCountMu, g.cfg.ItemCountSigma))
		if count < 1 {
			count = 1
		}
		if count > g.cfg.MaxItemsPerOrder {
			count = g.cfg.MaxItemsPerOrder
		}

		for line := 0; line < count; line++ {
			var material *Material
			var price float64
			var contractID string

			if header.OrderType == OrderTypeContract {
				if c := idx.AsOf(header.VendorCode, header.OrderDate); c != nil {
					material = materialByCode[c.MaterialCode]
					// Small variance around the contract price, not the
					// base price.
					price = c.Price * g.stream.Normal(1.0, 0.01)
					contractID = c.ID
					contractMatched++
				}
			}
			if material == nil {
				material = &g.materials[g.stream.IntN(len(g.materials))]
				price = material.BasePrice * g.stream.Normal(1.0, g.cfg.PriceVolatility)
				if vendor.AccountGroup == VendorPreferred {
					price *= g.stream.Uniform(1-maxPref, 1-minPref)
				}
			}

			quantity := float64(int(g.stream.LogNormal(1.3, 0.6)))
			if header.IsLarge {
				// Raise quantity toward the target value, never lower it.
				target := g.stream.Uniform(minVal, maxVal)
				if forced := float64(int(target / price)); forced > quantity {
					quantity = forced
				}
			}

			leadTime := g.stream.IntRange(5, 29)

			items = append(items, LineItem{
				OrderNumber:  header.OrderNumber,
				ItemNumber:   int32((line + 1) * 10),
				MaterialCode: material.Code,
				Quantity:     quantity,
				UnitPrice:    price,
				NetValue:     quantity * price,
				DeliveryDate: header.OrderDate.AddDate(0, 0, leadTime),
				Category:     material.Category,
				Unit:         material.Unit,
				Plant:        datagen.Choose(g.stream, g.cfg.Plants),
				ContractID:   contractID,
			})
		}
	}
	g.items = items

	logging.Debug().
		Int("items", len(items)).
		Int("contract_matched", contractMatched).
		Msg("Line items generated")
	return nil
}
