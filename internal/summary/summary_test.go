package summary_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/penny/internal/entry"
	"github.com/MrJamesThe3rd/penny/internal/summary"
)

func income(amount int64, paid bool) *entry.Entry {
	return &entry.Entry{
		Kind:   entry.KindIncome,
		Amount: decimal.NewFromInt(amount),
		Month:  1,
		Year:   2024,
		IsPaid: paid,
	}
}

func expense(category entry.Category, amount int64, paid bool) *entry.Entry {
	return &entry.Entry{
		Kind:     entry.KindExpense,
		Category: category,
		Amount:   decimal.NewFromInt(amount),
		Month:    1,
		Year:     2024,
		IsPaid:   paid,
	}
}

func TestSummarize_CategoryTotalsAndBalance(t *testing.T) {
	incomes := []*entry.Entry{income(3000, true)}
	expenses := []*entry.Entry{
		expense(entry.CategoryFixed, 900, true),
		expense(entry.CategoryFixed, 100, false),
		expense(entry.CategoryVariable, 250, false),
		expense(entry.CategorySubscription, 15, true),
		expense(entry.CategorySubscription, 10, false),
	}

	got := summary.Summarize(incomes, expenses, true)

	assert.True(t, decimal.NewFromInt(3000).Equal(got.TotalIncome))
	assert.True(t, decimal.NewFromInt(1000).Equal(got.TotalFixedExpenses))
	assert.True(t, decimal.NewFromInt(250).Equal(got.TotalVariableExpenses))
	assert.True(t, decimal.NewFromInt(25).Equal(got.TotalSubscriptions))

	assert.True(t, decimal.NewFromInt(900).Equal(got.PaidFixedExpenses))
	assert.True(t, decimal.Zero.Equal(got.PaidVariableExpenses))
	assert.True(t, decimal.NewFromInt(15).Equal(got.PaidSubscriptions))

	wantBalance := got.TotalIncome.
		Sub(got.TotalFixedExpenses).
		Sub(got.TotalVariableExpenses).
		Sub(got.TotalSubscriptions)
	assert.True(t, wantBalance.Equal(got.Balance))
	assert.True(t, decimal.NewFromInt(1725).Equal(got.Balance))
}

func TestSummarize_ExcludePending(t *testing.T) {
	incomes := []*entry.Entry{income(3000, true), income(500, false)}
	expenses := []*entry.Entry{
		expense(entry.CategoryFixed, 900, true),
		expense(entry.CategoryFixed, 100, false),
	}

	got := summary.Summarize(incomes, expenses, false)

	assert.True(t, decimal.NewFromInt(3000).Equal(got.TotalIncome))
	assert.True(t, decimal.NewFromInt(900).Equal(got.TotalFixedExpenses))

	// Paid variants are unaffected by the filter.
	assert.True(t, decimal.NewFromInt(900).Equal(got.PaidFixedExpenses))
}

func TestSummarize_WeeklyIncomeScaling(t *testing.T) {
	weekly := &entry.Entry{
		Kind:      entry.KindIncome,
		Amount:    decimal.NewFromInt(100),
		Recurring: true,
		Frequency: entry.FrequencyWeekly,
		Month:     2,
		Year:      2023, // 28 days: 4 weeks
		IsPaid:    true,
	}

	got := summary.Summarize([]*entry.Entry{weekly}, nil, true)
	assert.True(t, decimal.NewFromInt(400).Equal(got.TotalIncome), "got %s", got.TotalIncome)

	// 31-day month still floors to 4 weeks: 400, not 442.86.
	weekly.Month = 1
	weekly.Year = 2024

	got = summary.Summarize([]*entry.Entry{weekly}, nil, true)
	assert.True(t, decimal.NewFromInt(400).Equal(got.TotalIncome), "got %s", got.TotalIncome)
}

func TestSummarize_BiweeklyIncomeScaling(t *testing.T) {
	biweekly := &entry.Entry{
		Kind:      entry.KindIncome,
		Amount:    decimal.NewFromInt(1000),
		Recurring: true,
		Frequency: entry.FrequencyBiweekly,
		Month:     1,
		Year:      2024,
		IsPaid:    true,
	}

	got := summary.Summarize([]*entry.Entry{biweekly}, nil, true)
	assert.True(t, decimal.NewFromInt(2000).Equal(got.TotalIncome))
}

func TestSummarize_NonRecurringIncomeNotScaled(t *testing.T) {
	plain := income(100, true)
	plain.Frequency = entry.FrequencyWeekly // ignored: not recurring

	got := summary.Summarize([]*entry.Entry{plain}, nil, true)
	assert.True(t, decimal.NewFromInt(100).Equal(got.TotalIncome))
}

func TestSummarize_ActualAmountOverridesBudgeted(t *testing.T) {
	e := expense(entry.CategoryVariable, 200, true)
	actual := decimal.NewFromFloat(182.45)
	e.ActualAmount = &actual

	got := summary.Summarize(nil, []*entry.Entry{e}, true)
	assert.True(t, actual.Equal(got.TotalVariableExpenses))
	assert.True(t, actual.Equal(got.PaidVariableExpenses))
}

func TestSummarize_Additivity(t *testing.T) {
	setA := []*entry.Entry{
		expense(entry.CategoryFixed, 100, true),
		expense(entry.CategoryVariable, 50, false),
	}
	setB := []*entry.Entry{
		expense(entry.CategoryFixed, 40, false),
		expense(entry.CategorySubscription, 10, true),
	}
	incomesA := []*entry.Entry{income(1000, true)}
	incomesB := []*entry.Entry{income(200, false)}

	whole := summary.Summarize(
		append(append([]*entry.Entry{}, incomesA...), incomesB...),
		append(append([]*entry.Entry{}, setA...), setB...),
		true,
	)
	partA := summary.Summarize(incomesA, setA, true)
	partB := summary.Summarize(incomesB, setB, true)

	assert.True(t, partA.TotalIncome.Add(partB.TotalIncome).Equal(whole.TotalIncome))
	assert.True(t, partA.TotalFixedExpenses.Add(partB.TotalFixedExpenses).Equal(whole.TotalFixedExpenses))
	assert.True(t, partA.TotalVariableExpenses.Add(partB.TotalVariableExpenses).Equal(whole.TotalVariableExpenses))
	assert.True(t, partA.TotalSubscriptions.Add(partB.TotalSubscriptions).Equal(whole.TotalSubscriptions))
	assert.True(t, partA.PaidFixedExpenses.Add(partB.PaidFixedExpenses).Equal(whole.PaidFixedExpenses))
	assert.True(t, partA.Balance.Add(partB.Balance).Equal(whole.Balance))
}

func TestSummarize_Empty(t *testing.T) {
	got := summary.Summarize(nil, nil, true)

	assert.True(t, got.TotalIncome.IsZero())
	assert.True(t, got.Balance.IsZero())
}
