package tabular

import "strings"

// headerAliases maps every header spelling seen across spreadsheet
// generations onto the canonical column name. The original sheet used
// Korean headers.
var headerAliases = map[string]string{
	"date": "date", "날짜": "date",
	"kind": "kind", "구분": "kind",
	"category": "category", "카테고리": "category",
	"memo": "memo", "내역": "memo",
	"amount": "amount", "금액": "amount",
}

// CanonicalColumn resolves a header cell to its canonical name, or ""
// when the cell is not a recognized column header.
func CanonicalColumn(cell string) string {
	return headerAliases[strings.ToLower(strings.TrimSpace(cell))]
}

// looksLikeHeader reports whether a row is a header row: at least one
// cell resolves to a known column name.
func looksLikeHeader(row []string) bool {
	for _, cell := range row {
		if CanonicalColumn(cell) != "" {
			return true
		}
	}
	return false
}

// SplitHeader turns raw sheet rows into a Table, peeling off the first
// row as header when it is recognizable as one. Tables written by hand
// or by very old versions of the form sometimes lost their header; those
// come back with a nil Header and readers fall back to positional
// column assignment.
func SplitHeader(rows [][]string) Table {
	if len(rows) == 0 {
		return Table{}
	}
	if looksLikeHeader(rows[0]) {
		return Table{Header: rows[0], Rows: rows[1:]}
	}
	return Table{Rows: rows}
}

// ColumnIndex returns the index of a canonical column in the header, or
// its position in CanonicalHeader when the header is absent. Returns -1
// when a present header does not carry the column at all.
func (t Table) ColumnIndex(canonical string) int {
	if len(t.Header) == 0 {
		for i, name := range CanonicalHeader {
			if name == canonical {
				return i
			}
		}
		return -1
	}
	for i, cell := range t.Header {
		if CanonicalColumn(cell) == canonical {
			return i
		}
	}
	return -1
}

// HasCanonicalColumns reports whether all five expected columns are
// addressable, by name or by position.
func (t Table) HasCanonicalColumns() bool {
	for _, name := range CanonicalHeader {
		if t.ColumnIndex(name) < 0 {
			return false
		}
	}
	return true
}
