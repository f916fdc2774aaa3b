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
	"regexp"
	"time"

	"github.com/procdata/procgen/internal/procure"
)

var isoCurrency = regexp.MustCompile(`^[A-Z]{3}$`)

// columnRule validates one string column of a table: the value must be
// non-empty and, when maxLen is set, no longer than maxLen characters.
type columnRule[T any] struct {
	column string
	maxLen int
	value  func(*T) string
}

// dateRule validates one date column: a zero time counts as missing.
type dateRule[T any] struct {
	column string
	value  func(*T) time.Time
}

const categorySchema = "Schema"

// checkColumns applies the string column rules over all rows of a table.
// Missing values are critical, length violations are warnings.
func checkColumns[T any](e *Engine, table string, rows []T, rules []columnRule[T]) {
	for _, rule := range rules {
		var empty, tooLong []string
		for i := range rows {
			v := rule.value(&rows[i])
			if v == "" {
				empty = append(empty, fmt.Sprintf("row %d", i))
				continue
			}
			if rule.maxLen > 0 && len(v) > rule.maxLen {
				tooLong = append(tooLong, v)
			}
		}
		if len(empty) > 0 {
			e.fail(categorySchema, fmt.Sprintf("%s.%s Nulls", table, rule.column),
				fmt.Sprintf("%d nulls found", len(empty)),
				SeverityCritical, firstN(empty, 3)...)
		}
		if len(tooLong) > 0 {
			e.fail(categorySchema, fmt.Sprintf("%s.%s Length", table, rule.column),
				fmt.Sprintf("Exceeds %d chars", rule.maxLen),
				SeverityWarning, firstN(tooLong, 3)...)
		}
	}
}

// checkDates flags rows whose date column is the zero time.
func checkDates[T any](e *Engine, table string, rows []T, rules []dateRule[T]) {
	for _, rule := range rules {
		var missing []string
		for i := range rows {
			if rule.value(&rows[i]).IsZero() {
				missing = append(missing, fmt.Sprintf("row %d", i))
			}
		}
		if len(missing) > 0 {
			e.fail(categorySchema, fmt.Sprintf("%s.%s Nulls", table, rule.column),
				fmt.Sprintf("%d nulls found", len(missing)),
				SeverityCritical, firstN(missing, 3)...)
		}
	}
}

// schemaChecks validates required fields, length constraints, currency
// codes and goods-receipt completeness.
func (e *Engine) schemaChecks() {
	checkColumns(e, procure.TableVendors, e.ds.Vendors, []columnRule[procure.Vendor]{
		{column: "LIFNR", maxLen: 10, value: func(v *procure.Vendor) string { return v.Code }},
		{column: "NAME1", value: func(v *procure.Vendor) string { return v.Name }},
		{column: "LAND1", maxLen: 2, value: func(v *procure.Vendor) string { return v.Country }},
		{column: "KTOKK", value: func(v *procure.Vendor) string { return v.AccountGroup }},
	})

	checkColumns(e, procure.TableMaterials, e.ds.Materials, []columnRule[procure.Material]{
		{column: "MATNR", maxLen: 10, value: func(m *procure.Material) string { return m.Code }},
		{column: "MATKL", maxLen: 9, value: func(m *procure.Material) string { return m.Category }},
		{column: "MEINS", value: func(m *procure.Material) string { return m.Unit }},
	})

	checkColumns(e, procure.TableHeaders, e.ds.Headers, []columnRule[procure.OrderHeader]{
		{column: "EBELN", maxLen: 10, value: func(h *procure.OrderHeader) string { return h.OrderNumber }},
		{column: "LIFNR", value: func(h *procure.OrderHeader) string { return h.VendorCode }},
		{column: "BSART", value: func(h *procure.OrderHeader) string { return h.OrderType }},
		{column: "WAERS", maxLen: 3, value: func(h *procure.OrderHeader) string { return h.Currency }},
	})
	checkDates(e, procure.TableHeaders, e.ds.Headers, []dateRule[procure.OrderHeader]{
		{column: "AEDAT", value: func(h *procure.OrderHeader) time.Time { return h.OrderDate }},
	})

	checkColumns(e, procure.TableItems, e.ds.Items, []columnRule[procure.LineItem]{
		{column: "EBELN", maxLen: 10, value: func(it *procure.LineItem) string { return it.OrderNumber }},
		{column: "MATNR", value: func(it *procure.LineItem) string { return it.MaterialCode }},
	})

	checkColumns(e, procure.TableHistory, e.ds.History, []columnRule[procure.HistoryEvent]{
		{column: "EBELN", maxLen: 10, value: func(ev *procure.HistoryEvent) string { return ev.OrderNumber }},
		{column: "BEWTP", value: func(ev *procure.HistoryEvent) string { return ev.MovementType }},
	})
	checkDates(e, procure.TableHistory, e.ds.History, []dateRule[procure.HistoryEvent]{
		{column: "BUDAT", value: func(ev *procure.HistoryEvent) time.Time { return ev.PostingDate }},
	})

	checkColumns(e, procure.TableContracts, e.ds.Contracts, []columnRule[procure.Contract]{
		{column: "CONTRACT_ID", value: func(c *procure.Contract) string { return c.ID }},
		{column: "LIFNR", maxLen: 10, value: func(c *procure.Contract) string { return c.VendorCode }},
		{column: "MATNR", value: func(c *procure.Contract) string { return c.MaterialCode }},
	})
	checkDates(e, procure.TableContracts, e.ds.Contracts, []dateRule[procure.Contract]{
		{column: "VALID_FROM", value: func(c *procure.Contract) time.Time { return c.ValidFrom }},
		{column: "VALID_TO", value: func(c *procure.Contract) time.Time { return c.ValidTo }},
	})

	// Currency codes must be three uppercase letters.
	var badISO []string
	for i := range e.ds.Headers {
		if !isoCurrency.MatchString(e.ds.Headers[i].Currency) {
			badISO = append(badISO, e.ds.Headers[i].Currency)
		}
	}
	if len(badISO) > 0 {
		e.fail(categorySchema, "ISO Currency",
			fmt.Sprintf("%d invalid codes", len(badISO)),
			SeverityInfo, firstN(badISO, 3)...)
	}

	// Every goods receipt must carry an actual delivery date.
	var missingGR []string
	for i := range e.ds.History {
		ev := &e.ds.History[i]
		if ev.MovementType == procure.MovementGoodsReceipt && ev.ActualDelivery == nil {
			missingGR = append(missingGR, fmt.Sprintf("row %d", i))
		}
	}
	if len(missingGR) > 0 {
		e.fail(categorySchema, "EKBE.ACTUAL_DELIVERY_DATE Completeness",
			fmt.Sprintf("%d GRs missing Actual Delivery Date", len(missingGR)),
			SeverityCritical, firstN(missingGR, 3)...)
	}
}
