package summary

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/penny/internal/entry"
)

var ErrNotFound = errors.New("summary not found")

// Totals are the aggregate figures for one month.
type Totals struct {
	TotalIncome           decimal.Decimal
	TotalFixedExpenses    decimal.Decimal
	TotalVariableExpenses decimal.Decimal
	TotalSubscriptions    decimal.Decimal

	// Paid variants are always computed from the full entry sets, whatever
	// filter was applied to the totals above; the difference reports what is
	// still pending.
	PaidFixedExpenses    decimal.Decimal
	PaidVariableExpenses decimal.Decimal
	PaidSubscriptions    decimal.Decimal

	Balance decimal.Decimal
}

// Summary is the cached monthly roll-up, at most one per
// (owner, month, year).
type Summary struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Month   int
	Year    int
	Totals

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Summarize rolls a month's entries into its totals. It is a pure function
// of its inputs: no clock, no store.
//
// Recurring weekly/biweekly income is scaled by how many times it pays out in
// the entry's own month (full weeks or fortnights, floored); everything else
// counts once. includePending controls whether unpaid entries contribute to
// the totals; the paid-only variants ignore it.
func Summarize(incomes, expenses []*entry.Entry, includePending bool) Totals {
	var t Totals

	for _, in := range incomes {
		if !includePending && !in.IsPaid {
			continue
		}

		amount := in.EffectiveAmount()
		if in.Recurring {
			amount = in.Frequency.ScaleForMonth(amount, in.Year, in.Month)
		}

		t.TotalIncome = t.TotalIncome.Add(amount)
	}

	for _, ex := range expenses {
		amount := ex.EffectiveAmount()

		if ex.IsPaid {
			switch ex.Category {
			case entry.CategoryFixed:
				t.PaidFixedExpenses = t.PaidFixedExpenses.Add(amount)
			case entry.CategoryVariable:
				t.PaidVariableExpenses = t.PaidVariableExpenses.Add(amount)
			case entry.CategorySubscription:
				t.PaidSubscriptions = t.PaidSubscriptions.Add(amount)
			}
		}

		if !includePending && !ex.IsPaid {
			continue
		}

		switch ex.Category {
		case entry.CategoryFixed:
			t.TotalFixedExpenses = t.TotalFixedExpenses.Add(amount)
		case entry.CategoryVariable:
			t.TotalVariableExpenses = t.TotalVariableExpenses.Add(amount)
		case entry.CategorySubscription:
			t.TotalSubscriptions = t.TotalSubscriptions.Add(amount)
		}
	}

	t.Balance = t.TotalIncome.
		Sub(t.TotalFixedExpenses).
		Sub(t.TotalVariableExpenses).
		Sub(t.TotalSubscriptions)

	return t
}
