//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package quality

import (
	"fmt"
	"math"
	"sort"

	"github.com/procdata/procgen/internal/procure"
)

const categoryLogic = "Logic"

// logicChecks validates business rules across the transactional tables.
func (e *Engine) logicChecks() {
	e.checkNetValues()
	e.checkDeliveryDates()
	e.checkContractDates()
	e.checkInvoices()
	e.checkBlockedVendors()
	e.checkContractPrices()
}

// checkNetValues verifies NETWR = MENGE * NETPR within tolerance.
func (e *Engine) checkNetValues() {
	var mismatches int
	for i := range e.ds.Items {
		it := &e.ds.Items[i]
		diff := math.Abs(it.NetValue - it.Quantity*it.UnitPrice)
		if diff > it.NetValue*e.cfg.NetValueTolerance {
			mismatches++
		}
	}
	if mismatches > 0 {
		e.fail(categoryLogic, "Net Value",
			fmt.Sprintf("%d mismatch calculations", mismatches), SeverityWarning)
		return
	}
	e.pass(categoryLogic, "Net Value", "Correct")
}

// checkDeliveryDates verifies no item is due before its order date.
func (e *Engine) checkDeliveryDates() {
	orderDates := make(map[string]int, len(e.ds.Headers))
	for i := range e.ds.Headers {
		orderDates[e.ds.Headers[i].OrderNumber] = i
	}
	var early int
	for i := range e.ds.Items {
		it := &e.ds.Items[i]
		hi, ok := orderDates[it.OrderNumber]
		if !ok {
			continue
		}
		if it.DeliveryDate.Before(e.ds.Headers[hi].OrderDate) {
			early++
		}
	}
	if early > 0 {
		e.fail(categoryLogic, "Delivery Dates",
			fmt.Sprintf("%d items delivered before PO date", early), SeverityInfo)
		return
	}
	e.pass(categoryLogic, "Delivery Dates", "Valid")
}

// checkContractDates flags contracts that end before they start.
func (e *Engine) checkContractDates() {
	var invalid int
	for i := range e.ds.Contracts {
		c := &e.ds.Contracts[i]
		if !c.ValidTo.After(c.ValidFrom) {
			invalid++
		}
	}
	if invalid > 0 {
		e.fail(categoryLogic, "Contract Dates",
			fmt.Sprintf("%d contracts end before start", invalid), SeverityCritical)
	}
}

type eventPair struct {
	gr, inv *procure.HistoryEvent
}

// matchInvoices pairs each invoice with its goods receipt. When the
// dataset carries an explicit PAIR_ID linkage it is authoritative;
// otherwise both sides are sorted by posting order and paired by position
// within each line item.
func (e *Engine) matchInvoices() []eventPair {
	var receipts, invoices []*procure.HistoryEvent
	hasPairID := false
	for i := range e.ds.History {
		ev := &e.ds.History[i]
		if ev.PairID != "" {
			hasPairID = true
		}
		switch ev.MovementType {
		case procure.MovementGoodsReceipt:
			receipts = append(receipts, ev)
		case procure.MovementInvoiceReceipt:
			invoices = append(invoices, ev)
		}
	}

	var pairs []eventPair
	if hasPairID {
		byPair := make(map[string]*procure.HistoryEvent, len(receipts))
		for _, gr := range receipts {
			byPair[lineKey(gr.OrderNumber, gr.ItemNumber)+"|"+gr.PairID] = gr
		}
		for _, inv := range invoices {
			if gr, ok := byPair[lineKey(inv.OrderNumber, inv.ItemNumber)+"|"+inv.PairID]; ok {
				pairs = append(pairs, eventPair{gr: gr, inv: inv})
			}
		}
		return pairs
	}

	// Positional fallback: n-th receipt of a line matches its n-th invoice.
	byPosting := func(events []*procure.HistoryEvent) {
		sort.SliceStable(events, func(i, j int) bool {
			a, b := events[i], events[j]
			if a.OrderNumber != b.OrderNumber {
				return a.OrderNumber < b.OrderNumber
			}
			if a.ItemNumber != b.ItemNumber {
				return a.ItemNumber < b.ItemNumber
			}
			if !a.PostingDate.Equal(b.PostingDate) {
				return a.PostingDate.Before(b.PostingDate)
			}
			return a.DocumentNumber < b.DocumentNumber
		})
	}
	byPosting(receipts)
	byPosting(invoices)

	sequenced := func(events []*procure.HistoryEvent) map[string]*procure.HistoryEvent {
		out := make(map[string]*procure.HistoryEvent, len(events))
		seq := map[string]int{}
		for _, ev := range events {
			line := lineKey(ev.OrderNumber, ev.ItemNumber)
			out[fmt.Sprintf("%s|%d", line, seq[line])] = ev
			seq[line]++
		}
		return out
	}
	grBySeq := sequenced(receipts)
	for key, inv := range sequenced(invoices) {
		if gr, ok := grBySeq[key]; ok {
			pairs = append(pairs, eventPair{gr: gr, inv: inv})
		}
	}
	return pairs
}

// checkInvoices verifies invoice amounts and posting order against their
// matched goods receipts. Sub-cent differences are always tolerated.
func (e *Engine) checkInvoices() {
	pairs := e.matchInvoices()

	var badAmounts, badDates int
	for _, p := range pairs {
		diff := math.Abs(p.gr.Amount - p.inv.Amount)
		if diff > p.gr.Amount*e.cfg.InvoiceAmountTolerance && diff > 0.01 {
			badAmounts++
		}
		if p.inv.PostingDate.Before(p.gr.PostingDate) {
			badDates++
		}
	}

	if badAmounts > 0 {
		e.fail(categoryLogic, "Invoice Amounts",
			fmt.Sprintf("%d mismatches > %.0f%%", badAmounts, e.cfg.InvoiceAmountTolerance*100),
			SeverityWarning)
	} else {
		e.pass(categoryLogic, "Invoice Amounts", "Correct")
	}
	if badDates > 0 {
		e.fail(categoryLogic, "Invoice Sequence",
			fmt.Sprintf("%d invoices posted before GR", badDates), SeverityWarning)
	} else {
		e.pass(categoryLogic, "Invoice Sequence", "Valid")
	}
}

// checkBlockedVendors verifies blocked vendors have no orders inside the
// trailing window before the last order date.
func (e *Engine) checkBlockedVendors() {
	blocked := make(map[string]struct{})
	for i := range e.ds.Vendors {
		if e.ds.Vendors[i].Blocked == procure.BlockedFlag {
			blocked[e.ds.Vendors[i].Code] = struct{}{}
		}
	}
	if len(e.ds.Headers) == 0 {
		e.pass(categoryLogic, "Blocked Vendors", "No recent activity")
		return
	}

	simEnd := e.ds.Headers[0].OrderDate
	for i := range e.ds.Headers {
		if e.ds.Headers[i].OrderDate.After(simEnd) {
			simEnd = e.ds.Headers[i].OrderDate
		}
	}
	cutoff := simEnd.AddDate(0, 0, -e.cfg.BlockedWindowDays)

	var suspicious int
	for i := range e.ds.Headers {
		h := &e.ds.Headers[i]
		if _, ok := blocked[h.VendorCode]; ok && h.OrderDate.After(cutoff) {
			suspicious++
		}
	}
	if suspicious > 0 {
		e.fail(categoryLogic, "Blocked Vendors",
			fmt.Sprintf("%d POs for blocked vendors recently", suspicious),
			SeverityCritical)
		return
	}
	e.pass(categoryLogic, "Blocked Vendors", "No recent activity")
}

// checkContractPrices verifies items referencing a contract price within
// tolerance of it. Only items with a KONNR reference are checked.
func (e *Engine) checkContractPrices() {
	contractPrices := make(map[string]float64, len(e.ds.Contracts))
	for i := range e.ds.Contracts {
		contractPrices[e.ds.Contracts[i].ID] = e.ds.Contracts[i].Price
	}

	var referenced, found int
	var variances []float64
	var violations []string
	for i := range e.ds.Items {
		it := &e.ds.Items[i]
		if it.ContractID == "" {
			continue
		}
		referenced++
		price, ok := contractPrices[it.ContractID]
		if !ok || price <= 0 {
			continue
		}
		found++
		variance := math.Abs(it.UnitPrice-price) / price
		if variance > e.cfg.ContractPriceTolerance {
			variances = append(variances, variance)
			violations = append(violations, lineKey(it.OrderNumber, it.ItemNumber))
		}
	}

	switch {
	case referenced == 0:
		e.pass(categoryLogic, "Contract Price Consistency", "No items with KONNR found")
	case found == 0:
		e.warn(categoryLogic, "Contract Price Consistency",
			"Items have KONNR but contract not found in Master Data")
	case len(violations) > 0:
		e.result.Profile.PriceVariance = variances
		e.fail(categoryLogic, "Contract Price Consistency",
			fmt.Sprintf("%d items deviate >%.0f%% from contract price",
				len(violations), e.cfg.ContractPriceTolerance*100),
			SeverityCritical, firstN(violations, 3)...)
	default:
		e.pass(categoryLogic, "Contract Price Consistency",
			"All contract items match contract prices")
	}
}
