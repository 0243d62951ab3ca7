package entry

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/penny/internal/calendar"
)

// Frequency is how often a recurring entry repeats.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyOnce     Frequency = "once"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyOnce:
		return true
	}

	return false
}

// StepMonths is the fractional-month advance applied per generated
// occurrence. It only decides how many synthetic records the expander emits
// across a range; it does not produce real weekly/biweekly calendar spacing.
// The per-month amount scaling lives in ScaleForMonth and is authoritative
// for aggregation.
func (f Frequency) StepMonths() float64 {
	switch f {
	case FrequencyWeekly:
		return 0.25
	case FrequencyBiweekly:
		return 0.5
	case FrequencyMonthly:
		return 1
	}

	// once: no advancement, a single occurrence is emitted.
	return 0
}

// OccurrencesInMonth is how many times the frequency pays out in the given
// month: full weeks for weekly, full fortnights for biweekly, once otherwise.
func (f Frequency) OccurrencesInMonth(year, month int) int64 {
	days := int64(calendar.DaysInMonth(year, month))

	switch f {
	case FrequencyWeekly:
		return days / 7
	case FrequencyBiweekly:
		return days / 14
	}

	return 1
}

// ScaleForMonth converts a per-occurrence amount into the month's total.
func (f Frequency) ScaleForMonth(amount decimal.Decimal, year, month int) decimal.Decimal {
	n := f.OccurrencesInMonth(year, month)
	if n == 1 {
		return amount
	}

	return amount.Mul(decimal.NewFromInt(n))
}
