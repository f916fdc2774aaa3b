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
	"math"
	"sort"

	"github.com/procdata/procgen/internal/logging"
)

// partialDeliveryRate is the fraction of line items split into two goods
// receipts.
const partialDeliveryRate = 0.20

// qualityIssueRate is the fraction of history events flagged with a
// quality issue.
const qualityIssueRate = 0.08

// GenerateHistory produces the goods-receipt and invoice-receipt ledger.
// A fifth of the lines split into two receipts whose quantities sum to the
// line quantity. Lateness probability combines the base rate, the vendor's
// performance bias, and an earliness factor that makes deliveries due
// early in the simulation window less likely to be late. Most receipts
// spawn an invoice a few days later with cent-rounded amount noise.
// Document numbers are assigned sequentially after a global sort by
// (order, line, posting date).
func (g *Generator) GenerateHistory() error {
	if g.items == nil {
		return stageError("history", "line items")
	}
	if g.headers == nil {
		return stageError("history", "order headers")
	}

	headerByOrder := make(map[string]*OrderHeader, len(g.headers))
	for i := range g.headers {
		headerByOrder[g.headers[i].OrderNumber] = &g.headers[i]
	}
	biasByVendor := make(map[string]float64, len(g.vendors))
	for i := range g.vendors {
		biasByVendor[g.vendors[i].Code] = g.vendors[i].PerfBias
	}

	totalDays := g.end.Sub(g.start).Hours() / 24
	minInv, maxInv := g.cfg.InvoiceProcessingRange[0], g.cfg.InvoiceProcessingRange[1]

	var events []HistoryEvent
	for i := range g.items {
		item := &g.items[i]
		header := headerByOrder[item.OrderNumber]
		bias := biasByVendor[header.VendorCode]

		// Receipt quantities: one receipt, or a 40-60% split plus the
		// remainder (dropped if nothing is left).
		quantities := []float64{item.Quantity}
		if g.stream.Bernoulli(partialDeliveryRate) {
			first := math.Round(item.Quantity * g.stream.Uniform(0.4, 0.6))
			if first < 1 {
				first = 1
			}
			if rest := item.Quantity - first; rest > 0 {
				quantities = []float64{first, rest}
			} else {
				quantities = []float64{first}
			}
		}

		for _, qty := range quantities {
			// Deliveries due early in the window are less likely to be
			// late (ramp-up effect).
			daysFromStart := item.DeliveryDate.Sub(g.start).Hours() / 24
			earliness := 1.0 - daysFromStart/totalDays
			lateProb := g.cfg.DeliveryLateRate + bias*0.05 - earliness*g.cfg.EarlyDeliveryBias
			lateProb = math.Min(math.Max(lateProb, 0.05), 0.95)

			var offset int
			if g.stream.Bernoulli(lateProb) {
				switch g.stream.WeightedIndex(g.cfg.DeliveryDelayProbs) {
				case 0:
					offset = g.stream.IntRange(1, 7)
				case 1:
					offset = g.stream.IntRange(8, 14)
				default:
					offset = g.stream.IntRange(15, 30)
				}
			} else {
				offset = g.stream.IntRange(-5, 0)
			}

			actual := item.DeliveryDate.AddDate(0, 0, offset)
			if actual.Before(header.OrderDate) {
				actual = header.OrderDate
			}
			delivered := actual

			events = append(events, HistoryEvent{
				OrderNumber:    item.OrderNumber,
				ItemNumber:     item.ItemNumber,
				MovementType:   MovementGoodsReceipt,
				PostingDate:    actual,
				Quantity:       qty,
				Amount:         qty * item.UnitPrice,
				ActualDelivery: &delivered,
			})

			if g.stream.Bernoulli(g.cfg.InvoiceGenerationRate) {
				noise := g.stream.Normal(0, 0.01)
				noise = math.Min(math.Max(noise, -0.019), 0.019)
				amount := math.Round(qty*item.UnitPrice*(1.0+noise)*100) / 100

				events = append(events, HistoryEvent{
					OrderNumber:  item.OrderNumber,
					ItemNumber:   item.ItemNumber,
					MovementType: MovementInvoiceReceipt,
					PostingDate:  actual.AddDate(0, 0, g.stream.IntRange(minInv, maxInv-1)),
					Quantity:     qty,
					Amount:       amount,
				})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].OrderNumber != events[j].OrderNumber {
			return events[i].OrderNumber < events[j].OrderNumber
		}
		if events[i].ItemNumber != events[j].ItemNumber {
			return events[i].ItemNumber < events[j].ItemNumber
		}
		return events[i].PostingDate.Before(events[j].PostingDate)
	})

	for i := range events {
		events[i].DocumentNumber = fmt.Sprintf("5%09d", i+1)
		events[i].HasIssue = g.stream.Bernoulli(qualityIssueRate)

		bias := biasByVendor[headerByOrder[events[i].OrderNumber].VendorCode]
		response := g.stream.IntRange(1, 7) + int(bias*2)
		if response < 1 {
			response = 1
		} else if response > 10 {
			response = 10
		}
		events[i].ResponseDays = int32(response)
	}
	g.history = events

	logging.Debug().Int("events", len(events)).Msg("History ledger generated")
	return nil
}
