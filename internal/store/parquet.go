//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package store persists the generated tables as parquet files, one file
// per table named after the table. Load and save are whole-table
// operations; a failed write leaves no usable output and regeneration with
// the same seed is always safe.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/procdata/procgen/internal/logging"
	"github.com/procdata/procgen/internal/procure"
)

// TablePath returns the parquet file path for a table name.
func TablePath(dir, table string) string {
	return filepath.Join(dir, table+".parquet")
}

// Save writes all six tables of the dataset to dir, creating it if needed.
func Save(dir string, ds *procure.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := writeTable(dir, procure.TableVendors, ds.Vendors); err != nil {
		return err
	}
	if err := writeTable(dir, procure.TableMaterials, ds.Materials); err != nil {
		return err
	}
	if err := writeTable(dir, procure.TableContracts, ds.Contracts); err != nil {
		return err
	}
	if err := writeTable(dir, procure.TableHeaders, ds.Headers); err != nil {
		return err
	}
	if err := writeTable(dir, procure.TableItems, ds.Items); err != nil {
		return err
	}
	return writeTable(dir, procure.TableHistory, ds.History)
}

// Load reads all six tables from dir. A missing or unreadable table is an
// error naming the table; callers treat it as fatal.
func Load(dir string) (*procure.Dataset, error) {
	ds := &procure.Dataset{}
	var err error

	if ds.Vendors, err = readTable[procure.Vendor](dir, procure.TableVendors); err != nil {
		return nil, err
	}
	if ds.Materials, err = readTable[procure.Material](dir, procure.TableMaterials); err != nil {
		return nil, err
	}
	if ds.Contracts, err = readTable[procure.Contract](dir, procure.TableContracts); err != nil {
		return nil, err
	}
	if ds.Headers, err = readTable[procure.OrderHeader](dir, procure.TableHeaders); err != nil {
		return nil, err
	}
	if ds.Items, err = readTable[procure.LineItem](dir, procure.TableItems); err != nil {
		return nil, err
	}
	if ds.History, err = readTable[procure.HistoryEvent](dir, procure.TableHistory); err != nil {
		return nil, err
	}
	return ds, nil
}

func writeTable[T any](dir, table string, rows []T) error {
	path := TablePath(dir, table)
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("writing table %s: %w", table, err)
	}
	logging.Info().
		Str("table", table).
		Int("rows", len(rows)).
		Str("path", path).
		Msg("Table saved")
	return nil
}

func readTable[T any](dir, table string) ([]T, error) {
	path := TablePath(dir, table)
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("loading table %s: %w", table, err)
	}
	return rows, nil
}
