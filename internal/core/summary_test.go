package core

import "testing"

func ledgerFixture() []Entry {
	return []Entry{
		{Date: NewDate(2026, 2, 1), Kind: KindIncome, Category: "other", Memo: "salary", Amount: 100000},
		{Date: NewDate(2026, 2, 1), Kind: KindExpenseBeom, Category: "food", Memo: "lunch", Amount: 30000},
		{Date: NewDate(2026, 2, 14), Kind: KindShared, Category: "leisure", Memo: "cinema", Amount: 20000},
		{Date: NewDate(2026, 3, 1), Kind: KindIncome, Category: "other", Memo: "bonus", Amount: 50000},
	}
}

func TestAggregateMonth(t *testing.T) {
	s := Aggregate(ledgerFixture(), Period{Year: 2026, Month: 2})
	if s.Income != 100000 {
		t.Fatalf("income = %d, want 100000", s.Income)
	}
	if s.Expense != 50000 { // expense + shared both count as expense
		t.Fatalf("expense = %d, want 50000", s.Expense)
	}
	if s.Balance != 50000 {
		t.Fatalf("balance = %d, want 50000", s.Balance)
	}
}

func TestAggregateBalance(t *testing.T) {
	entries := []Entry{
		{Date: NewDate(2026, 2, 1), Kind: KindIncome, Amount: 100000},
		{Date: NewDate(2026, 2, 1), Kind: KindExpenseBeom, Amount: 30000},
	}
	s := Aggregate(entries, Period{Year: 2026, Month: 2})
	if s.Income != 100000 || s.Expense != 30000 || s.Balance != 70000 {
		t.Fatalf("got %+v", s)
	}
}

func TestAggregateDayFilter(t *testing.T) {
	s := Aggregate(ledgerFixture(), Period{Year: 2026, Month: 2, Day: 1})
	if s.Income != 100000 || s.Expense != 30000 {
		t.Fatalf("day filter leaked other days: %+v", s)
	}
	s = Aggregate(ledgerFixture(), Period{Year: 2026, Month: 2, Day: 14})
	if s.Income != 0 || s.Expense != 20000 {
		t.Fatalf("got %+v", s)
	}
}

func TestAggregateWholeLedger(t *testing.T) {
	s := Aggregate(ledgerFixture(), Period{})
	if s.Income != 150000 || s.Expense != 50000 || s.Balance != 100000 {
		t.Fatalf("got %+v", s)
	}
}

func TestAggregateOrderInsensitive(t *testing.T) {
	entries := ledgerFixture()
	reversed := make([]Entry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}
	p := Period{Year: 2026, Month: 2}
	if Aggregate(entries, p) != Aggregate(reversed, p) {
		t.Fatal("aggregate depends on entry order")
	}
}

func TestDailyTotals(t *testing.T) {
	totals := DailyTotals(ledgerFixture(), 2026, 2)
	if len(totals) != 2 {
		t.Fatalf("expected 2 days with entries, got %d", len(totals))
	}
	if d1 := totals[1]; d1.Income != 100000 || d1.Expense != 30000 || d1.Balance != 70000 {
		t.Fatalf("day 1: %+v", d1)
	}
	if d14 := totals[14]; d14.Expense != 20000 {
		t.Fatalf("day 14: %+v", d14)
	}
	if _, ok := totals[2]; ok {
		t.Fatal("day without entries should be absent")
	}
}

func TestSummaryAdd(t *testing.T) {
	a := Summary{Income: 10, Expense: 4, Balance: 6}
	b := Summary{Income: 1, Expense: 2, Balance: -1}
	got := a.Add(b)
	if got.Income != 11 || got.Expense != 6 || got.Balance != 5 {
		t.Fatalf("got %+v", got)
	}
}
