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
	"sort"

	"github.com/procdata/procgen/internal/datagen"
	"github.com/procdata/procgen/internal/logging"
)

// GenerateMaterials produces the material master, partitioned across the
// configured categories. Categories with an explicit share get
// floor(total*share) rows; the zero-share category absorbs the rounding
// remainder so the partition always sums exactly to the configured total.
// Base prices are log-uniform within each category's range, weights are
// zero for intangible categories, and the table is shuffled afterwards.
// This stage has no failure path.
func (g *Generator) GenerateMaterials() {
	total := g.cfg.NumMaterials
	categories := g.cfg.MaterialCategories

	// Deterministic iteration order regardless of map layout.
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	counts := make(map[string]int, len(keys))
	assigned := 0
	remainderKey := keys[len(keys)-1]
	for _, k := range keys {
		if categories[k].Share == 0 {
			remainderKey = k
			continue
		}
		c := int(float64(total) * categories[k].Share)
		counts[k] = c
		assigned += c
	}
	// Exact remainder, so the category counts sum to the configured total.
	if rem := total - assigned; rem > 0 {
		counts[remainderKey] += rem
	}

	faker := g.stream.Faker()
	earliest := g.start.AddDate(-vendorLookbackYears, 0, 0)

	materials := make([]Material, 0, total)
	for _, key := range keys {
		cat := categories[key]
		display := cat.Display
		if display == "" {
			display = key
		}

		for i := 0; i < counts[key]; i++ {
			var gross, net float64
			if cat.WeightRange[1] > 0 {
				gross = g.stream.Uniform(cat.WeightRange[0], cat.WeightRange[1])
				net = gross * g.stream.Uniform(0.80, 0.99)
			}

			materials = append(materials, Material{
				Description: fmt.Sprintf("%s - %s", display, faker.BuzzPhrase()),
				Type:        cat.MaterialType,
				Category:    display,
				Unit:        datagen.Choose(g.stream, cat.UnitOptions),
				CreatedAt:   g.stream.DateBetween(earliest, g.start),
				GrossWeight: gross,
				NetWeight:   net,
				BasePrice:   g.stream.LogUniform(cat.PriceRange[0], cat.PriceRange[1]),
			})
		}
	}

	// Codes reflect the realized total, not the requested one.
	for i := range materials {
		materials[i].Code = fmt.Sprintf("M%08d", i+1)
	}

	g.stream.Shuffle(len(materials), func(i, j int) {
		materials[i], materials[j] = materials[j], materials[i]
	})
	g.materials = materials

	logging.Debug().Int("materials", len(materials)).Msg("Material master generated")
}
