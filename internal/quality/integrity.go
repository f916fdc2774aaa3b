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
)

const categoryIntegrity = "Integrity"

// checkFK records an error if any source key misses the target set.
func (e *Engine) checkFK(label string, source []string, target map[string]struct{}) {
	var orphans []string
	for _, key := range source {
		if _, ok := target[key]; !ok {
			orphans = append(orphans, key)
		}
	}
	if len(orphans) > 0 {
		e.fail(categoryIntegrity, label,
			fmt.Sprintf("%d orphan records", len(orphans)),
			SeverityCritical, firstN(orphans, 3)...)
		return
	}
	e.pass(categoryIntegrity, label, "Valid")
}

// integrityChecks validates every foreign key between the six tables.
func (e *Engine) integrityChecks() {
	vendors := make(map[string]struct{}, len(e.ds.Vendors))
	for i := range e.ds.Vendors {
		vendors[e.ds.Vendors[i].Code] = struct{}{}
	}
	materials := make(map[string]struct{}, len(e.ds.Materials))
	for i := range e.ds.Materials {
		materials[e.ds.Materials[i].Code] = struct{}{}
	}
	orders := make(map[string]struct{}, len(e.ds.Headers))
	for i := range e.ds.Headers {
		orders[e.ds.Headers[i].OrderNumber] = struct{}{}
	}

	itemOrders := make([]string, len(e.ds.Items))
	itemMaterials := make([]string, len(e.ds.Items))
	for i := range e.ds.Items {
		itemOrders[i] = e.ds.Items[i].OrderNumber
		itemMaterials[i] = e.ds.Items[i].MaterialCode
	}
	headerVendors := make([]string, len(e.ds.Headers))
	for i := range e.ds.Headers {
		headerVendors[i] = e.ds.Headers[i].VendorCode
	}
	contractVendors := make([]string, len(e.ds.Contracts))
	contractMaterials := make([]string, len(e.ds.Contracts))
	for i := range e.ds.Contracts {
		contractVendors[i] = e.ds.Contracts[i].VendorCode
		contractMaterials[i] = e.ds.Contracts[i].MaterialCode
	}

	e.checkFK("EKPO->EKKO", itemOrders, orders)
	e.checkFK("EKKO->LFA1", headerVendors, vendors)
	e.checkFK("EKPO->MARA", itemMaterials, materials)
	e.checkFK("CONTRACTS->LFA1", contractVendors, vendors)
	e.checkFK("CONTRACTS->MARA", contractMaterials, materials)

	// History rows reference line items by composite key.
	items := make(map[string]struct{}, len(e.ds.Items))
	for i := range e.ds.Items {
		it := &e.ds.Items[i]
		items[lineKey(it.OrderNumber, it.ItemNumber)] = struct{}{}
	}
	var orphanEvents int
	for i := range e.ds.History {
		ev := &e.ds.History[i]
		if _, ok := items[lineKey(ev.OrderNumber, ev.ItemNumber)]; !ok {
			orphanEvents++
		}
	}
	if orphanEvents > 0 {
		e.fail(categoryIntegrity, "EKBE->EKPO",
			"History records exist for missing items", SeverityCritical)
		return
	}
	e.pass(categoryIntegrity, "EKBE->EKPO", "Valid")
}
