package series_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/penny/internal/entry"
	"github.com/MrJamesThe3rd/penny/internal/series"
)

func member(month, year int) *entry.Entry {
	return &entry.Entry{
		Kind:        entry.KindExpense,
		Category:    entry.CategorySubscription,
		Subcategory: "Streaming",
		Amount:      decimal.NewFromInt(15),
		Frequency:   entry.FrequencyMonthly,
		DueDay:      1,
		Recurring:   true,
		Month:       month,
		Year:        year,
	}
}

func TestFindSeries_MatchesExactFields(t *testing.T) {
	rep := member(1, 2024)

	corpus := []*entry.Entry{member(2, 2024), member(3, 2024)}
	got := series.FindSeries(rep, corpus)
	assert.Len(t, got, 2)
}

func TestFindSeries_AnyFieldChangeExcludes(t *testing.T) {
	rep := member(1, 2024)

	tests := []struct {
		name   string
		mutate func(*entry.Entry)
	}{
		{name: "Category", mutate: func(e *entry.Entry) { e.Category = entry.CategoryFixed }},
		{name: "Subcategory", mutate: func(e *entry.Entry) { e.Subcategory = "Music" }},
		{name: "Amount", mutate: func(e *entry.Entry) { e.Amount = decimal.NewFromInt(16) }},
		{name: "Frequency", mutate: func(e *entry.Entry) { e.Frequency = entry.FrequencyWeekly }},
		{name: "DueDay", mutate: func(e *entry.Entry) { e.DueDay = 2 }},
		{name: "NotRecurring", mutate: func(e *entry.Entry) { e.Recurring = false }},
		{name: "Kind", mutate: func(e *entry.Entry) { e.Kind = entry.KindIncome }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := member(2, 2024)
			tt.mutate(candidate)

			got := series.FindSeries(rep, []*entry.Entry{candidate})
			assert.Empty(t, got)
		})
	}
}

func TestFindSeries_AmountMatchIsExact(t *testing.T) {
	rep := member(1, 2024)

	near := member(2, 2024)
	near.Amount = decimal.NewFromFloat(15.01)

	assert.Empty(t, series.FindSeries(rep, []*entry.Entry{near}))

	// Same value in a different representation still matches.
	same := member(2, 2024)
	same.Amount = decimal.NewFromFloat(15.00)

	assert.Len(t, series.FindSeries(rep, []*entry.Entry{same}), 1)
}

func TestFindSeries_SortsByYearThenMonth(t *testing.T) {
	rep := member(1, 2024)

	got := series.FindSeries(rep, []*entry.Entry{
		member(1, 2025),
		member(3, 2024),
		member(11, 2023),
	})
	require.Len(t, got, 3)
	assert.Equal(t, 2023, got[0].Year)
	assert.Equal(t, 3, got[1].Month)
	assert.Equal(t, 2024, got[1].Year)
	assert.Equal(t, 2025, got[2].Year)
}

func TestPartition_All(t *testing.T) {
	matches := []*entry.Entry{member(3, 2024), member(6, 2024), member(1, 2025)}

	got := series.Partition(matches, true, 0, 0)
	assert.Len(t, got, 3)
}

func TestPartition_Cutoff(t *testing.T) {
	matches := []*entry.Entry{member(3, 2024), member(6, 2024), member(1, 2025)}

	got := series.Partition(matches, false, 6, 2024)
	require.Len(t, got, 2)
	assert.Equal(t, 6, got[0].Month)
	assert.Equal(t, 2024, got[0].Year)
	assert.Equal(t, 1, got[1].Month)
	assert.Equal(t, 2025, got[1].Year)
}

func TestPartition_CutoffAfterAllMatches(t *testing.T) {
	matches := []*entry.Entry{member(3, 2024)}

	got := series.Partition(matches, false, 1, 2026)
	assert.Empty(t, got)
}
