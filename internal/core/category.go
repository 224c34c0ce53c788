package core

import "strings"

// CategoryOther is the fallback for blank or unknown categories.
const CategoryOther = "other"

// Categories is the fixed vocabulary, in form display order. It mirrors
// the household spreadsheet's dropdown.
var Categories = []string{
	"food",
	"transport",
	"leisure",
	"household",
	"stocks",
	"saving",
	"telecom",
	CategoryOther,
}

// categoryAliases maps the legacy Korean labels still present in old
// spreadsheet rows onto the canonical vocabulary.
var categoryAliases = map[string]string{
	"식비":   "food",
	"교통":   "transport",
	"여가":   "leisure",
	"생필품": "household",
	"주식":   "stocks",
	"열매":   "saving",
	"통신":   "telecom",
	"기타":   CategoryOther,
}

// NormalizeCategory maps any input onto the fixed vocabulary. Blank and
// unknown values default to "other".
func NormalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryOther
	}
	if canon, ok := categoryAliases[s]; ok {
		return canon
	}
	for _, c := range Categories {
		if s == c {
			return c
		}
	}
	return CategoryOther
}
