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

	"github.com/procdata/procgen/internal/datagen"
	"github.com/procdata/procgen/internal/logging"
)

// GenerateContracts produces the vendor contract book. Vendor codes are
// drawn weighted by spend weight, materials uniformly, oversampling 1.5x
// the target to absorb duplicate (vendor, material) pairs. Duplicates are
// discarded and the result truncated to the target count; if deduplication
// over-trims, the shortfall is accepted rather than padded. Contract price
// discounts the material base price, and validity starts leave at least
// the configured runway before the simulation end.
func (g *Generator) GenerateContracts() error {
	if g.vendors == nil {
		return stageError("contract", "vendor master")
	}
	if g.materials == nil {
		return stageError("contract", "material master")
	}

	target := g.cfg.NumContracts
	draws := target + target/2

	weights := make([]float64, len(g.vendors))
	for i := range g.vendors {
		weights[i] = g.vendors[i].SpendWeight
	}

	minDisc, maxDisc := g.cfg.ContractDiscountRange[0], g.cfg.ContractDiscountRange[1]
	minDur, maxDur := g.cfg.ContractDurationRange[0], g.cfg.ContractDurationRange[1]
	latestStart := g.end.AddDate(0, 0, -g.cfg.ContractRunwayDays)

	seen := make(map[[2]string]bool, target)
	contracts := make([]Contract, 0, target)
	for i := 0; i < draws && len(contracts) < target; i++ {
		vendor := &g.vendors[g.stream.WeightedIndex(weights)]
		material := &g.materials[g.stream.IntN(len(g.materials))]

		pair := [2]string{vendor.Code, material.Code}
		if seen[pair] {
			continue
		}
		seen[pair] = true

		validFrom := g.stream.DateBetween(g.start, latestStart)
		duration := g.stream.IntRange(minDur, maxDur-1)

		contracts = append(contracts, Contract{
			ID:               fmt.Sprintf("C%09d", len(contracts)+1),
			VendorCode:       vendor.Code,
			MaterialCode:     material.Code,
			Price:            material.BasePrice * g.stream.Uniform(1-maxDisc, 1-minDisc),
			ValidFrom:        validFrom,
			ValidTo:          validFrom.AddDate(0, 0, duration),
			VolumeCommitment: int64(g.stream.IntRange(100, 9999)),
			Type: datagen.ChooseWeighted(g.stream,
				[]string{ContractBlanket, ContractSpot, ContractFramework},
				[]float64{0.5, 0.4, 0.1}),
		})
	}
	g.contracts = contracts

	logging.Debug().
		Int("contracts", len(contracts)).
		Int("target", target).
		Msg("Contract book generated")
	return nil
}
