package ledger

import (
	"fmt"

	"github.com/beom0515/beom-jyeon-book/internal/core"
	"github.com/beom0515/beom-jyeon-book/internal/tabular"
)

// DecodeTable turns raw backing-store rows into entries, parse-don't-
// validate style: each row either becomes a well-formed Entry or a
// RowError. Coercions are deliberately tolerant: an unparsable amount
// degrades to 0, a blank memo falls back to the category, a blank or
// unknown kind counts as income. Only an unparsable date drops the
// row, since it cannot be placed in any view.
func DecodeTable(owner core.Person, t tabular.Table) ([]core.Entry, []RowError) {
	entries := make([]core.Entry, 0, len(t.Rows))
	var rowErrs []RowError
	for i, row := range t.Rows {
		e, err := DecodeRow(owner, t, row)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i, Err: err})
			continue
		}
		entries = append(entries, e)
	}
	return entries, rowErrs
}

// DecodeRow decodes a single row using the table's column layout.
func DecodeRow(owner core.Person, t tabular.Table, row []string) (core.Entry, error) {
	cell := func(canonical string) string {
		idx := t.ColumnIndex(canonical)
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	date, err := core.ParseDate(cell("date"))
	if err != nil {
		return core.Entry{}, fmt.Errorf("date: %w", err)
	}

	kind, err := core.ParseKind(cell("kind"), owner)
	if err != nil {
		// A rowful of data with a blank tag still counts as income.
		kind = core.KindIncome
	}

	e := core.Entry{
		Date:     date,
		Kind:     kind,
		Category: cell("category"),
		Memo:     cell("memo"),
		Amount:   core.CoerceAmount(cell("amount")),
	}
	e.Normalize()
	return e, nil
}

// EncodeEntry renders an entry as a canonical backing-store row.
func EncodeEntry(e core.Entry) []string {
	return []string{
		e.Date.ISO(),
		e.Kind.String(),
		e.Category,
		e.Memo,
		fmt.Sprintf("%d", e.Amount),
	}
}

// EncodeEntryFor renders an entry following the column layout of an
// existing table, so appends to a legacy sheet with reordered or Korean
// headers keep cells under the right columns.
func EncodeEntryFor(t tabular.Table, e core.Entry) []string {
	if len(t.Header) == 0 {
		return EncodeEntry(e)
	}
	canonical := EncodeEntry(e)
	width := len(t.Header)
	if width < len(tabular.CanonicalHeader) {
		width = len(tabular.CanonicalHeader)
	}
	row := make([]string, width)
	for i, name := range tabular.CanonicalHeader {
		if idx := t.ColumnIndex(name); idx >= 0 && idx < width {
			row[idx] = canonical[i]
		}
	}
	return row
}
