package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	PersonBeom  Person = "beom"
	PersonJyeon Person = "jyeon"
)

const (
	KindIncome       Kind = "income"
	KindShared       Kind = "shared"
	KindExpenseBeom  Kind = "expense_of_beom"
	KindExpenseJyeon Kind = "expense_of_jyeon"
)

type (
	// Person identifies one ledger. The household has exactly two.
	Person string

	// Kind drives routing: which ledgers an entry lands in.
	Kind string

	// Entry is one recorded transaction, one row of a ledger.
	Entry struct {
		Date     Date
		Kind     Kind
		Category string
		Memo     string
		Amount   int64 // whole currency units, never negative
	}
)

var (
	ErrUnknownPerson = errors.New("unknown person")
	ErrInvalidKind   = errors.New("invalid kind")
	ErrInvalidAmount = errors.New("invalid amount")
)

// Persons returns both household members in a fixed order.
func Persons() []Person {
	return []Person{PersonBeom, PersonJyeon}
}

// ParsePerson validates a person id coming from a URL or form value.
func ParsePerson(s string) (Person, error) {
	switch Person(strings.ToLower(strings.TrimSpace(s))) {
	case PersonBeom:
		return PersonBeom, nil
	case PersonJyeon:
		return PersonJyeon, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPerson, s)
	}
}

// Other returns the other household member.
func (p Person) Other() Person {
	if p == PersonBeom {
		return PersonJyeon
	}
	return PersonBeom
}

func (p Person) String() string { return string(p) }

// ExpenseOf returns the expense kind tied to one person's ledger.
func ExpenseOf(p Person) Kind {
	if p == PersonJyeon {
		return KindExpenseJyeon
	}
	return KindExpenseBeom
}

// ParseKind normalizes a kind token. Legacy Korean labels from the
// original spreadsheet are accepted; a bare "expense" (지출) belongs to
// the ledger owner and needs that context to resolve.
func ParseKind(s string, owner Person) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "수입":
		return KindIncome, nil
	case "shared", "우리":
		return KindShared, nil
	case "expense", "지출":
		return ExpenseOf(owner), nil
	case string(KindExpenseBeom):
		return KindExpenseBeom, nil
	case string(KindExpenseJyeon):
		return KindExpenseJyeon, nil
	case "":
		return "", ErrInvalidKind
	default:
		// Unrecognized tags on legacy rows count as income.
		return KindIncome, nil
	}
}

func (k Kind) String() string { return string(k) }

// IsIncome reports whether the entry counts toward income in aggregates.
// Everything else, shared entries included, counts as expense.
func (k Kind) IsIncome() bool { return k == KindIncome }

// ClassifyTargets returns the ledgers an entry must be written to.
// Shared entries land in both ledgers, person-tagged expenses in that
// person's ledger, and everything else (income) in the ledger of the
// person entering the data.
func ClassifyTargets(k Kind, entering Person) []Person {
	switch k {
	case KindShared:
		return []Person{PersonBeom, PersonJyeon}
	case KindExpenseBeom:
		return []Person{PersonBeom}
	case KindExpenseJyeon:
		return []Person{PersonJyeon}
	default:
		return []Person{entering}
	}
}

// Normalize applies the defaulting rules before validation: blank
// category becomes "other", blank memo falls back to the category.
func (e *Entry) Normalize() {
	e.Category = NormalizeCategory(e.Category)
	if strings.TrimSpace(e.Memo) == "" {
		e.Memo = e.Category
	} else {
		e.Memo = strings.TrimSpace(e.Memo)
	}
}

func (e Entry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(string(e.Kind)) == "" {
		return ErrInvalidKind
	}
	if e.Amount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, e.Amount)
	}
	return nil
}
