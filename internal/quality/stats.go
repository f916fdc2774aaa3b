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

	"gonum.org/v1/gonum/stat"

	"github.com/procdata/procgen/internal/procure"
)

const (
	categoryStats        = "Stats"
	categoryCompleteness = "Completeness"

	// maxOutlierShare caps the tolerated fraction of extreme prices.
	maxOutlierShare = 0.01

	// maxCategoryShare caps any single material category's share.
	maxCategoryShare = 0.40
)

// statsChecks validates distributional targets and completeness.
func (e *Engine) statsChecks() {
	e.checkPareto()
	e.checkContractRate()
	e.checkLateRate()
	e.checkReceiptInvoiceRatio()
	e.checkPriceOutliers()
	e.checkMaterialBalance()
	e.checkEmptyOrders()
	e.checkReceiptCoverage()
	e.checkDateRange()
}

// checkPareto verifies the top 20% of vendors carry the expected share of
// total spend.
func (e *Engine) checkPareto() {
	vendorByOrder := make(map[string]string, len(e.ds.Headers))
	for i := range e.ds.Headers {
		vendorByOrder[e.ds.Headers[i].OrderNumber] = e.ds.Headers[i].VendorCode
	}
	spend := map[string]float64{}
	for i := range e.ds.Items {
		it := &e.ds.Items[i]
		if vendor, ok := vendorByOrder[it.OrderNumber]; ok {
			spend[vendor] += it.NetValue
		}
	}

	var total float64
	amounts := make([]float64, 0, len(spend))
	for _, v := range spend {
		amounts = append(amounts, v)
		total += v
	}
	if total <= 0 || len(amounts) == 0 {
		e.warn(categoryStats, "Pareto Dist", "No spend recorded")
		return
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(amounts)))

	topCount := int(float64(len(amounts)) * 0.2)
	var topSum float64
	for _, v := range amounts[:topCount] {
		topSum += v
	}
	ratio := topSum / total

	e.result.Profile.ParetoPct = ratio * 100
	band := e.cfg.ParetoShareBand
	if band[0] <= ratio && ratio <= band[1] {
		e.pass(categoryStats, "Pareto Dist",
			fmt.Sprintf("Top 20%% = %.1f%% spend", ratio*100))
		return
	}
	e.warn(categoryStats, "Pareto Dist",
		fmt.Sprintf("Ratio %.1f%% outside [%.2f, %.2f]", ratio*100, band[0], band[1]))
}

// checkContractRate verifies the share of contract-type orders.
func (e *Engine) checkContractRate() {
	if len(e.ds.Headers) == 0 {
		e.warn(categoryStats, "Contract Compliance", "No orders to evaluate")
		return
	}
	var contract int
	for i := range e.ds.Headers {
		if e.ds.Headers[i].OrderType == procure.OrderTypeContract {
			contract++
		}
	}
	rate := float64(contract) / float64(len(e.ds.Headers))
	band := e.cfg.ContractRateBand
	if band[0] <= rate && rate <= band[1] {
		e.pass(categoryStats, "Contract Compliance", fmt.Sprintf("Rate %.1f%%", rate*100))
		return
	}
	e.warn(categoryStats, "Contract Compliance",
		fmt.Sprintf("Rate %.1f%% outside [%.2f, %.2f]", rate*100, band[0], band[1]))
}

// checkLateRate verifies goods receipts land late at the expected rate,
// comparing posting dates against the promised delivery dates.
func (e *Engine) checkLateRate() {
	due := make(map[string]int, len(e.ds.Items))
	for i := range e.ds.Items {
		it := &e.ds.Items[i]
		due[lineKey(it.OrderNumber, it.ItemNumber)] = i
	}

	var receipts, late int
	for i := range e.ds.History {
		ev := &e.ds.History[i]
		if ev.MovementType != procure.MovementGoodsReceipt {
			continue
		}
		ii, ok := due[lineKey(ev.OrderNumber, ev.ItemNumber)]
		if !ok {
			continue
		}
		receipts++
		if ev.PostingDate.After(e.ds.Items[ii].DeliveryDate) {
			late++
		}
	}
	if receipts == 0 {
		e.warn(categoryStats, "Late Delivery Rate", "No goods receipts to evaluate")
		return
	}
	rate := float64(late) / float64(receipts)
	e.result.Profile.LatePct = rate * 100
	band := e.cfg.LateDeliveryBand
	if band[0] <= rate && rate <= band[1] {
		e.pass(categoryStats, "Late Delivery Rate", fmt.Sprintf("Rate %.1f%%", rate*100))
		return
	}
	e.warn(categoryStats, "Late Delivery Rate",
		fmt.Sprintf("Rate %.1f%% outside [%.2f, %.2f]", rate*100, band[0], band[1]))
}

// checkReceiptInvoiceRatio verifies invoices roughly balance receipts.
func (e *Engine) checkReceiptInvoiceRatio() {
	var gr, ir int
	for i := range e.ds.History {
		switch e.ds.History[i].MovementType {
		case procure.MovementGoodsReceipt:
			gr++
		case procure.MovementInvoiceReceipt:
			ir++
		}
	}
	var ratio float64
	if gr > 0 {
		ratio = float64(ir) / float64(gr)
	}
	if 0.9 <= ratio && ratio <= 1.1 {
		e.pass(categoryStats, "GR/IR Ratio", fmt.Sprintf("Ratio %.2f", ratio))
		return
	}
	e.warn(categoryStats, "GR/IR Ratio", fmt.Sprintf("Imbalanced: %.2f", ratio))
}

// checkPriceOutliers flags unit prices more than three standard deviations
// from their category mean on a log scale.
func (e *Engine) checkPriceOutliers() {
	byCategory := map[string][]float64{}
	for i := range e.ds.Items {
		it := &e.ds.Items[i]
		if it.Category == "" {
			continue
		}
		byCategory[it.Category] = append(byCategory[it.Category], math.Log1p(it.UnitPrice))
	}

	var outliers int
	for _, prices := range byCategory {
		if len(prices) < 2 {
			continue
		}
		mean, std := stat.MeanStdDev(prices, nil)
		if std == 0 {
			continue
		}
		for _, p := range prices {
			if math.Abs(p-mean) > 3*std {
				outliers++
			}
		}
	}

	if float64(outliers) > float64(len(e.ds.Items))*maxOutlierShare {
		e.warn(categoryStats, "Price Outliers",
			fmt.Sprintf("%d extreme price outliers found", outliers))
		return
	}
	e.pass(categoryStats, "Price Outliers", "No significant outliers")
}

// checkMaterialBalance verifies no category dominates the material master.
func (e *Engine) checkMaterialBalance() {
	if len(e.ds.Materials) == 0 {
		e.fail(categoryCompleteness, "Material Balance", "No materials found", SeverityWarning)
		return
	}
	counts := map[string]int{}
	for i := range e.ds.Materials {
		counts[e.ds.Materials[i].Category]++
	}
	for _, n := range counts {
		if float64(n)/float64(len(e.ds.Materials)) > maxCategoryShare {
			e.fail(categoryCompleteness, "Material Balance",
				fmt.Sprintf("Category imbalance > %.0f%%", maxCategoryShare*100),
				SeverityWarning)
			return
		}
	}
	e.pass(categoryCompleteness, "Material Balance", "Balanced")
}

// checkEmptyOrders flags headers without a single line item.
func (e *Engine) checkEmptyOrders() {
	withItems := make(map[string]struct{}, len(e.ds.Headers))
	for i := range e.ds.Items {
		withItems[e.ds.Items[i].OrderNumber] = struct{}{}
	}
	var empty int
	for i := range e.ds.Headers {
		if _, ok := withItems[e.ds.Headers[i].OrderNumber]; !ok {
			empty++
		}
	}
	if empty > 0 {
		e.fail(categoryCompleteness, "Empty POs",
			fmt.Sprintf("%d POs have no items", empty), SeverityWarning)
		return
	}
	e.pass(categoryCompleteness, "Empty POs", "Valid")
}

// checkReceiptCoverage verifies every line item has at least one goods
// receipt.
func (e *Engine) checkReceiptCoverage() {
	if len(e.ds.Items) == 0 {
		e.fail(categoryCompleteness, "GR Coverage", "No line items found", SeverityCritical)
		return
	}
	covered := make(map[string]struct{})
	for i := range e.ds.History {
		ev := &e.ds.History[i]
		if ev.MovementType == procure.MovementGoodsReceipt {
			covered[lineKey(ev.OrderNumber, ev.ItemNumber)] = struct{}{}
		}
	}
	var withGR int
	for i := range e.ds.Items {
		it := &e.ds.Items[i]
		if _, ok := covered[lineKey(it.OrderNumber, it.ItemNumber)]; ok {
			withGR++
		}
	}
	coverage := float64(withGR) / float64(len(e.ds.Items))
	if coverage < 1.0 {
		e.fail(categoryCompleteness, "GR Coverage",
			fmt.Sprintf("Missing GR for %d items (%.1f%%)", len(e.ds.Items)-withGR, coverage*100),
			SeverityCritical)
		return
	}
	e.pass(categoryCompleteness, "GR Coverage",
		fmt.Sprintf("Full coverage: %.1f%%", coverage*100))
}

// checkDateRange verifies order dates fall inside the simulation years.
func (e *Engine) checkDateRange() {
	if len(e.ds.Headers) == 0 {
		e.fail(categoryCompleteness, "Date Range", "No orders found", SeverityInfo)
		return
	}
	minDate, maxDate := e.ds.Headers[0].OrderDate, e.ds.Headers[0].OrderDate
	for i := range e.ds.Headers {
		d := e.ds.Headers[i].OrderDate
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}
	years := e.cfg.DateRangeYears
	if minDate.Year() >= years[0] && maxDate.Year() <= years[1] {
		e.pass(categoryCompleteness, "Date Range",
			fmt.Sprintf("%s to %s", minDate.Format("2006-01-02"), maxDate.Format("2006-01-02")))
		return
	}
	e.fail(categoryCompleteness, "Date Range",
		fmt.Sprintf("Dates %s-%s out of scope",
			minDate.Format("2006-01-02"), maxDate.Format("2006-01-02")),
		SeverityInfo)
}
