package http

import (
	"time"

	"github.com/beom0515/beom-jyeon-book/internal/core"
)

type (
	// calendarDay is one cell of the month grid. Day 0 renders as a
	// blank leading/trailing cell.
	calendarDay struct {
		Day     int
		Income  string
		Expense string
		HasData bool
	}

	calendarView struct {
		Person  string
		Year    int
		Month   int
		Weeks   [][]calendarDay
		Summary summaryView
	}

	summaryView struct {
		Income  string
		Expense string
		Balance string
	}
)

// buildCalendar lays one month's daily totals out as weeks starting on
// Sunday, the way the household was used to reading it.
func buildCalendar(person core.Person, entries []core.Entry, year, month int) calendarView {
	totals := core.DailyTotals(entries, year, month)

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday()) // Sunday = 0

	var weeks [][]calendarDay
	week := make([]calendarDay, 0, 7)
	for i := 0; i < lead; i++ {
		week = append(week, calendarDay{})
	}
	for day := 1; day <= daysInMonth; day++ {
		cell := calendarDay{Day: day}
		if sum, ok := totals[day]; ok {
			cell.HasData = true
			cell.Income = formatAmount(sum.Income)
			cell.Expense = formatAmount(sum.Expense)
		}
		week = append(week, cell)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]calendarDay, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, calendarDay{})
		}
		weeks = append(weeks, week)
	}

	monthSum := core.Aggregate(entries, core.Period{Year: year, Month: month})
	return calendarView{
		Person:  person.String(),
		Year:    year,
		Month:   month,
		Weeks:   weeks,
		Summary: newSummaryView(monthSum),
	}
}

func newSummaryView(s core.Summary) summaryView {
	return summaryView{
		Income:  formatAmount(s.Income),
		Expense: formatAmount(s.Expense),
		Balance: formatAmount(s.Balance),
	}
}

func formatAmount(v int64) string {
	return core.FormatAmount(v)
}
