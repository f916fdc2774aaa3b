//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package procure

import (
	"fmt"

	"github.com/procdata/procgen/internal/logging"
)

// vendorLookbackYears bounds how far before the simulation start a vendor
// may have been created.
const vendorLookbackYears = 5

// GenerateVendors produces the vendor master. The top pareto_split
// fraction of vendors receives a spend weight chosen so that, used as
// sampling mass for orders and contracts, the realized spend concentration
// converges to pareto_spend_share. Preferred status is drawn per tier at
// different rates, blocked status independently, and performance bias from
// Normal(0, 2). The table is shuffled afterwards so spend tier cannot be
// read off row position. This stage has no failure path.
func (g *Generator) GenerateVendors() {
	n := g.cfg.NumVendors
	numTop := int(float64(n) * g.cfg.ParetoSplit)

	split := g.cfg.ParetoSplit
	share := g.cfg.ParetoSpendShare
	topWeight := 1.0
	if split > 0 && share < 1.0 {
		topWeight = (share * (1 - split)) / (split * (1 - share))
	}

	// Preferred vendors skew toward the top tier: 80% of the preferred
	// pool is budgeted there, converted into independent per-tier rates so
	// realized counts are approximate, not exact.
	numPreferred := int(float64(n) * g.cfg.PreferredVendorRatio)
	prefTopBudget := int(float64(numPreferred) * 0.80)
	topRate, bottomRate := 0.0, 0.0
	if numTop > 0 {
		topRate = float64(prefTopBudget) / float64(numTop)
	}
	if n-numTop > 0 {
		bottomRate = float64(numPreferred-prefTopBudget) / float64(n-numTop)
	}

	earliest := g.start.AddDate(-vendorLookbackYears, 0, 0)
	faker := g.stream.Faker()

	vendors := make([]Vendor, n)
	for i := range vendors {
		weight := 1.0
		prefRate := bottomRate
		if i < numTop {
			weight = topWeight
			prefRate = topRate
		}

		group := VendorStandard
		if g.stream.Bernoulli(prefRate) {
			group = VendorPreferred
		}
		blocked := ""
		if g.stream.Bernoulli(g.cfg.BlockedVendorRate) {
			blocked = BlockedFlag
		}

		vendors[i] = Vendor{
			Code:         fmt.Sprintf("V%07d", i+1),
			Name:         faker.Company(),
			Country:      faker.CountryCode(),
			City:         faker.City(),
			Street:       faker.Street(),
			Phone:        faker.Phone(),
			Email:        faker.Email(),
			AccountGroup: group,
			Blocked:      blocked,
			CreatedAt:    g.stream.DateBetween(earliest, g.start),
			SpendWeight:  weight,
			PerfBias:     g.stream.Normal(0, 2.0),
		}
	}

	g.stream.Shuffle(len(vendors), func(i, j int) {
		vendors[i], vendors[j] = vendors[j], vendors[i]
	})
	g.vendors = vendors

	logging.Debug().Int("vendors", len(vendors)).Msg("Vendor master generated")
}
