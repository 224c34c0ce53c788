// Package core holds the ledger domain: entries, routing, aggregation.
//
// This file contains amount parsing. Amounts are whole currency units
// (the household books in KRW, which has no minor unit in practice), so
// there is no cents arithmetic anywhere.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount converts a form or spreadsheet cell value into a
// non-negative whole-unit amount.
//
// Accepted shapes: plain digits ("30000"), grouped digits ("30,000"),
// a trailing currency marker ("30000원", "₩30000"), and numeric strings
// the spreadsheet rendered as floats ("30000.0"). Negative values are
// rejected.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₩")
	s = strings.TrimSuffix(s, "원")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("%w: negative", ErrInvalidAmount)
		}
		return v, nil
	}
	// Spreadsheet cells round-trip integers as "30000.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: negative", ErrInvalidAmount)
	}
	return int64(f + 0.5), nil
}

// CoerceAmount is the lenient variant used at the read boundary: an
// unparsable cell degrades to 0 instead of dropping the row.
func CoerceAmount(s string) int64 {
	v, err := ParseAmount(s)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount renders an amount with thousands separators for display.
func FormatAmount(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
