package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day. The time component is always midnight UTC.
type Date struct {
	time.Time
}

var ErrInvalidDate = errors.New("invalid date")

// dateLayouts are the input shapes the entry form and the household
// spreadsheet produced over time. All normalize to ISO YYYY-MM-DD.
var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"2006-1-2",
	"2006.1.2",
	"2006/1/2",
	"20060102",
	"2006-01-02 15:04:05",
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate normalizes any accepted input format to a Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ISO renders the canonical YYYY-MM-DD form written to the backing store.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

func (d Date) Year() int  { return d.Time.Year() }
func (d Date) Month() int { return int(d.Time.Month()) }
func (d Date) Day() int   { return d.Time.Day() }

// InMonth reports whether the date falls in the given year and month.
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && d.Month() == month
}

// Equal compares calendar days.
func (d Date) Equal(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month() && d.Day() == other.Day()
}
