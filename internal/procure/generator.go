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
	"time"

	"github.com/procdata/procgen/internal/config"
	"github.com/procdata/procgen/internal/datagen"
	"github.com/procdata/procgen/internal/logging"
)

// Generator runs the six generation stages in foreign-key dependency
// order: vendors and materials first, then contracts, then order headers,
// line items, and history. Every random draw comes from the one stream the
// generator was constructed with, so a given (seed, config) pair always
// produces the same dataset.
type Generator struct {
	cfg    *config.GeneratorConfig
	stream *datagen.Stream

	start time.Time
	end   time.Time

	vendors   []Vendor
	materials []Material
	contracts []Contract
	headers   []OrderHeader
	items     []LineItem
	history   []HistoryEvent
}

// New creates a generator for the given configuration and random stream.
func New(cfg *config.GeneratorConfig, stream *datagen.Stream) (*Generator, error) {
	start, end, err := cfg.SimulationWindow()
	if err != nil {
		return nil, err
	}
	return &Generator{
		cfg:    cfg,
		stream: stream,
		start:  start,
		end:    end,
	}, nil
}

// GenerateAll runs the full pipeline and returns the assembled dataset.
func (g *Generator) GenerateAll() (*Dataset, error) {
	logging.Info().Msg("Generating master data")
	g.GenerateVendors()
	g.GenerateMaterials()

	logging.Info().Msg("Generating contract relationships")
	if err := g.GenerateContracts(); err != nil {
		return nil, err
	}

	logging.Info().Msg("Generating transactions")
	if err := g.GenerateHeaders(); err != nil {
		return nil, err
	}
	if err := g.GenerateLineItems(); err != nil {
		return nil, err
	}
	if err := g.GenerateHistory(); err != nil {
		return nil, err
	}

	return g.Dataset(), nil
}

// Dataset returns the tables generated so far.
func (g *Generator) Dataset() *Dataset {
	return &Dataset{
		Vendors:   g.vendors,
		Materials: g.materials,
		Contracts: g.contracts,
		Headers:   g.headers,
		Items:     g.items,
		History:   g.history,
	}
}

// stageError reports a generation stage invoked before its dependency.
func stageError(stage, missing string) error {
	return fmt.Errorf("%s generation requires %s to be generated first", stage, missing)
}

// LogSummary logs headline statistics for a completed dataset: total spend,
// spend by order type, late-delivery rate, and the top vendors by spend.
func (d *Dataset) LogSummary() {
	var totalSpend float64
	spendByType := make(map[string]float64)
	spendByVendor := make(map[string]float64)

	headerByOrder := make(map[string]*OrderHeader, len(d.Headers))
	for i := range d.Headers {
		headerByOrder[d.Headers[i].OrderNumber] = &d.Headers[i]
	}

	for i := range d.Items {
		item := &d.Items[i]
		totalSpend += item.NetValue
		if h, ok := headerByOrder[item.OrderNumber]; ok {
			spendByType[h.OrderType] += item.NetValue
			spendByVendor[h.VendorCode] += item.NetValue
		}
	}

	logging.Info().
		Float64("total_spend", totalSpend).
		Float64("contract_spend", spendByType[OrderTypeContract]).
		Float64("spot_spend", spendByType[OrderTypeSpot]).
		Msg("Spend summary")

	// Late delivery rate across goods receipts.
	deliveryByItem := make(map[string]time.Time, len(d.Items))
	for i := range d.Items {
		item := &d.Items[i]
		deliveryByItem[itemKey(item.OrderNumber, item.ItemNumber)] = item.DeliveryDate
	}
	var receipts, late int
	for i := range d.History {
		ev := &d.History[i]
		if ev.MovementType != MovementGoodsReceipt {
			continue
		}
		receipts++
		if due, ok := deliveryByItem[itemKey(ev.OrderNumber, ev.ItemNumber)]; ok && ev.PostingDate.After(due) {
			late++
		}
	}
	if receipts > 0 {
		logging.Info().
			Int("goods_receipts", receipts).
			Float64("late_pct", float64(late)/float64(receipts)*100).
			Msg("Delivery performance")
	}

	// Top vendors by realized spend.
	type vendorSpend struct {
		code  string
		spend float64
	}
	ranked := make([]vendorSpend, 0, len(spendByVendor))
	for code, spend := range spendByVendor {
		ranked = append(ranked, vendorSpend{code, spend})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].spend != ranked[j].spend {
			return ranked[i].spend > ranked[j].spend
		}
		return ranked[i].code < ranked[j].code
	})
	nameByCode := make(map[string]string, len(d.Vendors))
	for i := range d.Vendors {
		nameByCode[d.Vendors[i].Code] = d.Vendors[i].Name
	}
	for i := 0; i < len(ranked) && i < 5; i++ {
		logging.Info().
			Str("vendor", ranked[i].code).
			Str("name", nameByCode[ranked[i].code]).
			Float64("spend", ranked[i].spend).
			Msg("Top vendor")
	}
}

func itemKey(order string, item int32) string {
	return fmt.Sprintf("%s-%d", order, item)
}
