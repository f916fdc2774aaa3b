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

	"github.com/procdata/procgen/internal/config"
	"github.com/procdata/procgen/internal/logging"
	"github.com/procdata/procgen/internal/procure"
	"github.com/procdata/procgen/internal/store"
)

// Engine runs the validation rule set over a dataset. It is independent of
// the generator: any directory holding the six parquet tables can be
// validated.
type Engine struct {
	cfg    config.QualityConfig
	ds     *procure.Dataset
	result *Result
}

// New returns an engine configured with cfg.
func New(cfg config.QualityConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Run loads the tables from the configured data directory and evaluates
// them. A table that cannot be loaded is fatal; rule failures are not,
// they only lower the score.
func (e *Engine) Run() (*Result, error) {
	logging.Info().Str("dir", e.cfg.DataDir).Msg("Loading dataset")
	ds, err := store.Load(e.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return e.Evaluate(ds), nil
}

// Evaluate runs every rule stage over an already-loaded dataset.
func (e *Engine) Evaluate(ds *procure.Dataset) *Result {
	e.ds = ds
	e.result = newResult()

	e.profile()
	e.schemaChecks()
	e.integrityChecks()
	e.logicChecks()
	e.statsChecks()

	logging.Info().
		Int("score", e.result.Score).
		Int("checks", len(e.result.Checks)).
		Int("failed", len(e.result.Failed())).
		Msg("Validation complete")
	return e.result
}

// profile records row counts and fan-out ratios before any rule runs.
func (e *Engine) profile() {
	p := &e.result.Profile
	p.RecordCounts[procure.TableVendors] = len(e.ds.Vendors)
	p.RecordCounts[procure.TableMaterials] = len(e.ds.Materials)
	p.RecordCounts[procure.TableContracts] = len(e.ds.Contracts)
	p.RecordCounts[procure.TableHeaders] = len(e.ds.Headers)
	p.RecordCounts[procure.TableItems] = len(e.ds.Items)
	p.RecordCounts[procure.TableHistory] = len(e.ds.History)

	var receipts, invoices int
	for _, ev := range e.ds.History {
		switch ev.MovementType {
		case procure.MovementGoodsReceipt:
			receipts++
		case procure.MovementInvoiceReceipt:
			invoices++
		}
	}
	if n := len(e.ds.Headers); n > 0 {
		p.Cardinality.AvgItemsPerPO = float64(len(e.ds.Items)) / float64(n)
	}
	if n := len(e.ds.Items); n > 0 {
		p.Cardinality.AvgReceiptsPerItem = float64(receipts) / float64(n)
		p.Cardinality.AvgInvoicesPerItem = float64(invoices) / float64(n)
	}
}

func (e *Engine) pass(category, name, msg string) {
	e.result.add(Check{
		Category: category,
		Name:     name,
		Status:   StatusPass,
		Message:  msg,
		Severity: SeverityInfo,
	})
	logging.Debug().Str("check", category+"/"+name).Msg(msg)
}

func (e *Engine) warn(category, name, msg string) {
	e.result.add(Check{
		Category: category,
		Name:     name,
		Status:   StatusWarn,
		Message:  msg,
		Severity: SeverityInfo,
	})
	logging.Warn().Str("check", category+"/"+name).Msg(msg)
}

func (e *Engine) fail(category, name, msg string, severity Severity, examples ...string) {
	e.result.add(Check{
		Category: category,
		Name:     name,
		Status:   StatusFail,
		Message:  msg,
		Examples: examples,
		Severity: severity,
	})
	logging.Error().
		Str("check", category+"/"+name).
		Str("severity", string(severity)).
		Msg(msg)
}

// lineKey identifies a line item by its composite key.
func lineKey(order string, item int32) string {
	return fmt.Sprintf("%s-%d", order, item)
}

// firstN caps an example list at n entries.
func firstN(examples []string, n int) []string {
	if len(examples) > n {
		return examples[:n]
	}
	return examples
}
