package tabular

import "testing"

func TestSplitHeader(t *testing.T) {
	english := [][]string{
		{"date", "kind", "category", "memo", "amount"},
		{"2026-02-01", "income", "other", "salary", "100000"},
	}
	tab := SplitHeader(english)
	if len(tab.Header) != 5 || len(tab.Rows) != 1 {
		t.Fatalf("english header not detected: %+v", tab)
	}

	korean := [][]string{
		{"날짜", "구분", "카테고리", "내역", "금액"},
		{"2026-02-01", "수입", "기타", "월급", "100000"},
	}
	tab = SplitHeader(korean)
	if len(tab.Header) != 5 || len(tab.Rows) != 1 {
		t.Fatalf("korean header not detected: %+v", tab)
	}

	headless := [][]string{
		{"2026-02-01", "income", "other", "salary", "100000"},
	}
	tab = SplitHeader(headless)
	if tab.Header != nil || len(tab.Rows) != 1 {
		t.Fatalf("data row misread as header: %+v", tab)
	}

	if tab = SplitHeader(nil); tab.Header != nil || tab.Rows != nil {
		t.Fatalf("empty input should yield empty table: %+v", tab)
	}
}

func TestColumnIndex(t *testing.T) {
	// Named access follows the header even when columns are reordered.
	tab := Table{Header: []string{"금액", "날짜", "구분", "카테고리", "내역"}}
	if got := tab.ColumnIndex("amount"); got != 0 {
		t.Fatalf("amount index = %d, want 0", got)
	}
	if got := tab.ColumnIndex("date"); got != 1 {
		t.Fatalf("date index = %d, want 1", got)
	}

	// Positional fallback without a header.
	tab = Table{}
	if got := tab.ColumnIndex("memo"); got != 3 {
		t.Fatalf("positional memo index = %d, want 3", got)
	}

	// A header that lost a column reports it as missing.
	tab = Table{Header: []string{"date", "category", "memo", "amount"}}
	if got := tab.ColumnIndex("kind"); got != -1 {
		t.Fatalf("kind index = %d, want -1", got)
	}
	if tab.HasCanonicalColumns() {
		t.Fatal("table missing kind should not report canonical columns")
	}
}
