package core

// Period is the explicit view state threaded through queries and
// rendering. A zero Period means the whole ledger; Day == 0 means the
// whole month.
type Period struct {
	Year  int
	Month int // 1-12
	Day   int // 0 or 1-31
}

// WholeLedger reports whether no filtering applies.
func (p Period) WholeLedger() bool { return p.Year == 0 && p.Month == 0 }

// Matches reports whether an entry date falls inside the period.
func (p Period) Matches(d Date) bool {
	if p.WholeLedger() {
		return true
	}
	if p.Day != 0 {
		return d.Equal(NewDate(p.Year, p.Month, p.Day))
	}
	return d.InMonth(p.Year, p.Month)
}

// Summary holds the aggregate for one period of one ledger.
type Summary struct {
	Income  int64
	Expense int64
	Balance int64
}

// Add merges another summary in, used for household-wide views.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Income:  s.Income + other.Income,
		Expense: s.Expense + other.Expense,
		Balance: s.Balance + other.Balance,
	}
}

// Aggregate computes income, expense and balance over the entries that
// fall inside the period. Income is the sum of amounts whose stored kind
// is "income"; everything else, shared entries included, counts as
// expense. Pure function, insensitive to entry order.
func Aggregate(entries []Entry, p Period) Summary {
	var s Summary
	for _, e := range entries {
		if !p.Matches(e.Date) {
			continue
		}
		if e.Kind.IsIncome() {
			s.Income += e.Amount
		} else {
			s.Expense += e.Amount
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}

// DailyTotals buckets one month's entries by day for the calendar view.
// Keys are days of the month that have at least one entry.
func DailyTotals(entries []Entry, year, month int) map[int]Summary {
	out := make(map[int]Summary)
	for _, e := range entries {
		if !e.Date.InMonth(year, month) {
			continue
		}
		s := out[e.Date.Day()]
		if e.Kind.IsIncome() {
			s.Income += e.Amount
		} else {
			s.Expense += e.Amount
		}
		s.Balance = s.Income - s.Expense
		out[e.Date.Day()] = s
	}
	return out
}
