package entry

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind distinguishes income from expense entries. Both share the same base
// record shape; expense-only fields are zero-valued on income entries.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Category classifies an expense entry.
type Category string

const (
	CategoryFixed        Category = "fixed"
	CategoryVariable     Category = "variable"
	CategorySubscription Category = "subscription"
)

var (
	ErrNotFound          = errors.New("entry not found")
	ErrNotOwner          = errors.New("entry belongs to another owner")
	ErrInvalidKind       = errors.New("invalid entry kind")
	ErrInvalidCategory   = errors.New("invalid expense category")
	ErrInvalidFrequency  = errors.New("invalid recurrence frequency")
	ErrInvalidDueDay     = errors.New("due day must be between 1 and 31")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrUnsupportedFilter = errors.New("filter not supported by store")
)

// Entry is one concrete income or expense record for a single (month, year).
// A recurring series is stored as multiple entries sharing the template
// fields, one per occurrence.
type Entry struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Kind    Kind

	// Source labels an income entry ("Salary"); Category and Subcategory
	// classify an expense ("fixed" / "Mortgage").
	Source      string
	Category    Category
	Subcategory string

	Amount decimal.Decimal
	// ActualAmount overrides Amount when the realized value differs from
	// the budgeted one. Nil until the user records it.
	ActualAmount *decimal.Decimal

	Month int // 1-12
	Year  int

	Recurring bool
	Frequency Frequency
	StartDate *time.Time
	EndDate   *time.Time

	// DueDate is the resolved date this expense occurrence is due; DueDay
	// is the nominal day-of-month it was derived from (clamped per month).
	DueDate *time.Time
	DueDay  int

	IsPaid      bool
	Description string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFixed, CategoryVariable, CategorySubscription:
		return true
	}

	return false
}

// EffectiveAmount returns the realized amount when recorded, the budgeted
// amount otherwise.
func (e *Entry) EffectiveAmount() decimal.Decimal {
	if e.ActualAmount != nil {
		return *e.ActualAmount
	}

	return e.Amount
}
