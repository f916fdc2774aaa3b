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
	"time"

	"github.com/procdata/procgen/internal/datagen"
	"github.com/procdata/procgen/internal/logging"
)

// GenerateHeaders produces purchase order headers. Order dates are drawn
// from the simulation range with Q4 months weighted higher, vendors by
// spend weight. Orders that land a blocked vendor inside the trailing
// blocked window are repaired in two branches: the date is shifted earlier
// when the vendor existed before the cutoff, otherwise the vendor is
// replaced with a non-blocked one. The shift branch runs before the
// replacement branch, and no header leaves this stage with both a blocked
// vendor and a recent date.
func (g *Generator) GenerateHeaders() error {
	if g.vendors == nil {
		return stageError("order header", "vendor master")
	}

	n := g.cfg.NumOrders
	cutoff := g.end.AddDate(0, 0, -g.cfg.BlockedWindowDays)

	// Day-level weights over the inclusive date range, Q4 boosted.
	totalDays := int(g.end.Sub(g.start).Hours()/24) + 1
	dayWeights := make([]float64, totalDays)
	for i := range dayWeights {
		day := g.start.AddDate(0, 0, i)
		if m := day.Month(); m >= time.October {
			dayWeights[i] = g.cfg.SeasonalityQ4Factor
		} else {
			dayWeights[i] = 1.0
		}
	}

	vendorWeights := make([]float64, len(g.vendors))
	var safe []int
	for i := range g.vendors {
		vendorWeights[i] = g.vendors[i].SpendWeight
		if g.vendors[i].Blocked == "" {
			safe = append(safe, i)
		}
	}

	headers := make([]OrderHeader, n)
	vendorIdx := make([]int, n)
	for i := range headers {
		orderDate := g.start.AddDate(0, 0, g.stream.WeightedIndex(dayWeights))
		vendorIdx[i] = g.stream.WeightedIndex(vendorWeights)
		headers[i] = OrderHeader{
			OrderNumber: fmt.Sprintf("PO%08d", i+1),
			OrderDate:   orderDate,
		}
	}

	// Blocked-vendor repair, shift branch first.
	var shifted, replaced int
	for i := range headers {
		v := &g.vendors[vendorIdx[i]]
		if v.Blocked == "" || headers[i].OrderDate.Before(cutoff) {
			continue
		}
		if v.CreatedAt.Before(cutoff) {
			lower := v.CreatedAt
			if lower.Before(g.start) {
				lower = g.start
			}
			headers[i].OrderDate = g.stream.DateBetween(lower, cutoff.AddDate(0, 0, -1))
			shifted++
		} else {
			if len(safe) == 0 {
				return fmt.Errorf("cannot repair blocked-vendor order %s: no non-blocked vendors", headers[i].OrderNumber)
			}
			vendorIdx[i] = safe[g.stream.IntN(len(safe))]
			replaced++
		}
	}

	for i := range headers {
		v := &g.vendors[vendorIdx[i]]
		isLarge := g.stream.Bernoulli(g.cfg.LargeOrderProb)

		// Contract-type probability band is itself randomized per order.
		var contractProb float64
		if isLarge {
			contractProb = g.stream.Uniform(0.80, 0.95)
		} else {
			contractProb = g.stream.Uniform(0.60, 0.80)
		}
		orderType := OrderTypeSpot
		if g.stream.Bernoulli(contractProb) {
			orderType = OrderTypeContract
		}

		headers[i].VendorCode = v.Code
		headers[i].OrderType = orderType
		headers[i].CompanyCode = datagen.Choose(g.stream, g.cfg.CompanyCodes)
		headers[i].Currency = datagen.ChooseWeighted(g.stream, g.cfg.Currencies, g.cfg.CurrencyDistribution)
		headers[i].PurchasingOrg = datagen.Choose(g.stream, g.cfg.PurchasingOrgs)
		headers[i].PurchasingGroup = datagen.Choose(g.stream, g.cfg.PurchasingGroups)
		headers[i].DocumentDate = headers[i].OrderDate
		headers[i].IsLarge = isLarge
	}
	g.headers = headers

	logging.Debug().
		Int("headers", len(headers)).
		Int("dates_shifted", shifted).
		Int("vendors_replaced", replaced).
		Msg("Order headers generated")
	return nil
}
