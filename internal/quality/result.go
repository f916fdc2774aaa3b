//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package quality validates a generated procurement dataset against
// schema, integrity, business-logic and statistical rules, producing a
// weighted 0-100 score and a structured result.
package quality

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Status is the outcome of a single check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusWarn Status = "WARN"
)

// Severity weighs a failed check's score penalty.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityWarning  Severity = "Warning"
	SeverityInfo     Severity = "Info"
)

// penalty returns the score deduction for a FAIL at this severity.
func (s Severity) penalty() int {
	switch s {
	case SeverityCritical:
		return 15
	case SeverityWarning:
		return 5
	default:
		return 0
	}
}

// Check is one executed validation rule.
type Check struct {
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Status   Status   `json:"status"`
	Message  string   `json:"message"`
	Examples []string `json:"examples,omitempty"`
	Severity Severity `json:"severity"`
}

// Cardinality summarizes per-entity fan-out ratios of the dataset.
type Cardinality struct {
	AvgItemsPerPO      float64 `json:"avg_items_per_po"`
	AvgReceiptsPerItem float64 `json:"avg_receipts_per_item"`
	AvgInvoicesPerItem float64 `json:"avg_invoices_per_item"`
}

// Profile carries dataset statistics gathered while validating.
type Profile struct {
	RecordCounts  map[string]int `json:"record_counts"`
	Cardinality   Cardinality    `json:"cardinality"`
	ParetoPct     float64        `json:"pareto_pct"`
	LatePct       float64        `json:"late_pct"`
	PriceVariance []float64      `json:"price_variance,omitempty"`
}

// Result is the outcome of a full validation run. The score starts at 100
// and every recorded failure deducts its severity penalty; warnings deduct
// a flat 2. It never drops below zero.
type Result struct {
	Timestamp time.Time `json:"timestamp"`
	Score     int       `json:"score"`
	Checks    []Check   `json:"checks"`
	Profile   Profile   `json:"profile"`
}

func newResult() *Result {
	return &Result{
		Timestamp: time.Now(),
		Score:     100,
		Profile:   Profile{RecordCounts: map[string]int{}},
	}
}

func (r *Result) add(c Check) {
	switch c.Status {
	case StatusFail:
		r.Score = max(0, r.Score-c.Severity.penalty())
	case StatusWarn:
		r.Score = max(0, r.Score-2)
	}
	r.Checks = append(r.Checks, c)
}

// Failed returns the checks that did not pass.
func (r *Result) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if c.Status != StatusPass {
			out = append(out, c)
		}
	}
	return out
}

// WriteJSON serializes the result to path as indented JSON.
func (r *Result) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
