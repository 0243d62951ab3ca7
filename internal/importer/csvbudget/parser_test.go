package csvbudget_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/penny/internal/entry"
	"github.com/MrJamesThe3rd/penny/internal/importer/csvbudget"
)

func TestParse_BasicFile(t *testing.T) {
	input := `date,description,amount,category,subcategory
2024-01-05,Electricity,82.40,fixed,Utilities
2024-01-12,Groceries,56.10,variable,Food
2024-02-01,Streaming,15.00,subscription,Entertainment
`

	got, err := csvbudget.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, entry.KindExpense, first.Kind)
	assert.Equal(t, entry.CategoryFixed, first.Category)
	assert.Equal(t, "Utilities", first.Subcategory)
	assert.Equal(t, "Electricity", first.Description)
	assert.True(t, decimal.NewFromFloat(82.40).Equal(first.Amount))
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, 2024, first.Year)
	assert.Equal(t, 5, first.DueDay)

	assert.Equal(t, entry.CategorySubscription, got[2].Category)
	assert.Equal(t, 2, got[2].Month)
}

func TestParse_HeaderNotFirstRow(t *testing.T) {
	input := `Exported from MyBank,,
,,
date,description,amount
2024-03-10,Coffee,3.20
`

	got, err := csvbudget.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Coffee", got[0].Description)
}

func TestParse_EuropeanAmountsAndDates(t *testing.T) {
	input := "date,description,amount\n" +
		"15/01/2024,Rent,\"1.200,00\"\n"

	got, err := csvbudget.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, decimal.NewFromInt(1200).Equal(got[0].Amount), "got %s", got[0].Amount)
	assert.Equal(t, 15, got[0].DueDay)
	assert.Equal(t, 1, got[0].Month)
}

func TestParse_NegativeAmountsAbsolute(t *testing.T) {
	input := "date,description,amount\n2024-01-05,Refunded purchase,-19.99\n"

	got, err := csvbudget.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, decimal.NewFromFloat(19.99).Equal(got[0].Amount))
}

func TestParse_UnknownCategoryDefaultsToVariable(t *testing.T) {
	input := "date,description,amount,category\n2024-01-05,Mystery,10.00,whatever\n"

	got, err := csvbudget.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entry.CategoryVariable, got[0].Category)
}

func TestParse_SkipsFooterRows(t *testing.T) {
	input := `date,description,amount
2024-01-05,Groceries,56.10
Total,,56.10
`

	got, err := csvbudget.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestParse_MissingHeader(t *testing.T) {
	input := "just,some,cells\n1,2,3\n"

	_, err := csvbudget.New().Parse(strings.NewReader(input))
	assert.Error(t, err)
}
