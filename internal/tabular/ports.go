// Package tabular defines the port for the spreadsheet-like backing
// store. Rows are loosely typed string cells; column presence is not
// guaranteed, so decoding happens at the ledger boundary.
package tabular

import "context"

// CanonicalHeader is the expected column order of every ledger table.
// New tables are written with it; reads fall back to this positional
// order when the header row is missing.
var CanonicalHeader = []string{"date", "kind", "category", "memo", "amount"}

type (
	// Table is one worksheet: an optional header row plus data rows.
	Table struct {
		Header []string
		Rows   [][]string
	}

	// Store is the tabular backing store. Write replaces the entire
	// table contents; there is no incremental append at this layer.
	Store interface {
		Read(ctx context.Context, tableID string) (Table, error)
		Write(ctx context.Context, tableID string, t Table) error
	}
)

// IsEmpty reports whether the table carries no data rows.
func (t Table) IsEmpty() bool { return len(t.Rows) == 0 }

// Clone deep-copies the table so callers can mutate freely.
func (t Table) Clone() Table {
	out := Table{Header: append([]string(nil), t.Header...)}
	out.Rows = make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}
