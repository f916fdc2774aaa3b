//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package procure implements the synthetic procurement dataset generator:
// six interrelated tables (vendors, materials, contracts, order headers,
// line items, history events) with referential integrity and
// statistically-controlled distributions.
package procure

import "time"

// Persisted table names, following SAP conventions. Each table is written
// to <name>.parquet in the output directory.
const (
	TableVendors   = "LFA1"
	TableMaterials = "MARA"
	TableContracts = "VENDOR_CONTRACTS"
	TableHeaders   = "EKKO"
	TableItems     = "EKPO"
	TableHistory   = "EKBE"
)

// Vendor account groups.
const (
	VendorStandard  = "STD"
	VendorPreferred = "PREF"
)

// BlockedFlag marks a vendor as ineligible for recent order activity.
const BlockedFlag = "X"

// Order types.
const (
	OrderTypeContract = "NB"
	OrderTypeSpot     = "FO"
)

// History event movement types.
const (
	MovementGoodsReceipt   = "E"
	MovementInvoiceReceipt = "Q"
)

// Contract types.
const (
	ContractBlanket   = "BLANKET"
	ContractSpot      = "SPOT"
	ContractFramework = "FRAMEWORK"
)

// Vendor is one row of the vendor master (LFA1). SpendWeight and PerfBias
// are generation-internal and never persisted.
type Vendor struct {
	Code         string    `parquet:"LIFNR"`
	Name         string    `parquet:"NAME1"`
	Country      string    `parquet:"LAND1"`
	City         string    `parquet:"ORT01"`
	Street       string    `parquet:"STRAS"`
	Phone        string    `parquet:"TELF1"`
	Email        string    `parquet:"SMTP_ADDR"`
	AccountGroup string    `parquet:"KTOKK"`
	Blocked      string    `parquet:"SPERR"`
	CreatedAt    time.Time `parquet:"ERDAT"`

	SpendWeight float64 `parquet:"-"`
	PerfBias    float64 `parquet:"-"`
}

// Material is one row of the material master (MARA). BasePrice anchors
// downstream pricing and is never persisted.
type Material struct {
	Code        string    `parquet:"MATNR"`
	Description string    `parquet:"MAKTX"`
	Type        string    `parquet:"MTART"`
	Category    string    `parquet:"MATKL"`
	Unit        string    `parquet:"MEINS"`
	CreatedAt   time.Time `parquet:"ERSDA"`
	GrossWeight float64   `parquet:"BRGEW"`
	NetWeight   float64   `parquet:"NTGEW"`

	BasePrice float64 `parquet:"-"`
}

// Contract is one row of the vendor contract book. (VendorCode,
// MaterialCode) pairs are unique across all contracts.
type Contract struct {
	ID               string    `parquet:"CONTRACT_ID"`
	VendorCode       string    `parquet:"LIFNR"`
	MaterialCode     string    `parquet:"MATNR"`
	Price            float64   `parquet:"CONTRACT_PRICE"`
	ValidFrom        time.Time `parquet:"VALID_FROM"`
	ValidTo          time.Time `parquet:"VALID_TO"`
	VolumeCommitment int64     `parquet:"VOLUME_COMMITMENT"`
	Type             string    `parquet:"CONTRACT_TYPE"`
}

// OrderHeader is one row of the purchase order header table (EKKO).
// IsLarge is generation-internal and never persisted.
type OrderHeader struct {
	OrderNumber     string    `parquet:"EBELN"`
	CompanyCode     string    `parquet:"BUKRS"`
	OrderType       string    `parquet:"BSART"`
	OrderDate       time.Time `parquet:"AEDAT"`
	VendorCode      string    `parquet:"LIFNR"`
	Currency        string    `parquet:"WAERS"`
	PurchasingOrg   string    `parquet:"EKORG"`
	PurchasingGroup string    `parquet:"EKGRP"`
	DocumentDate    time.Time `parquet:"BEDAT"`

	IsLarge bool `parquet:"-"`
}

// LineItem is one row of the purchase order item table (EKPO), identified
// by (OrderNumber, ItemNumber). ContractID is set only for contract-type
// lines with a temporally valid match.
type LineItem struct {
	OrderNumber  string    `parquet:"EBELN"`
	ItemNumber   int32     `parquet:"EBELP"`
	MaterialCode string    `parquet:"MATNR"`
	Quantity     float64   `parquet:"MENGE"`
	UnitPrice    float64   `parquet:"NETPR"`
	NetValue     float64   `parquet:"NETWR"`
	DeliveryDate time.Time `parquet:"EINDT"`
	Category     string    `parquet:"MATKL"`
	Unit         string    `parquet:"MEINS"`
	Plant        string    `parquet:"WERKS"`
	ContractID   string    `parquet:"KONNR,optional"`
}

// HistoryEvent is one row of the order history ledger (EKBE): a goods
// receipt or an invoice receipt against a line item. ActualDelivery is set
// for goods receipts only. PairID links an invoice to its receipt when
// emitted; the validator falls back to positional matching when it is
// empty.
type HistoryEvent struct {
	OrderNumber    string     `parquet:"EBELN"`
	ItemNumber     int32      `parquet:"EBELP"`
	MovementType   string     `parquet:"BEWTP"`
	PostingDate    time.Time  `parquet:"BUDAT"`
	Quantity       float64    `parquet:"MENGE"`
	Amount         float64    `parquet:"DMBTR"`
	DocumentNumber string     `parquet:"BELNR"`
	ActualDelivery *time.Time `parquet:"ACTUAL_DELIVERY_DATE,optional"`
	HasIssue       bool       `parquet:"HAS_ISSUE"`
	ResponseDays   int32      `parquet:"RESPONSE_DAYS"`
	PairID         string     `parquet:"PAIR_ID,optional"`
}

// Dataset bundles the six generated tables. It is the generator's output
// and the persistence layer's unit of work.
type Dataset struct {
	Vendors   []Vendor
	Materials []Material
	Contracts []Contract
	Headers   []OrderHeader
	Items     []LineItem
	History   []HistoryEvent
}
