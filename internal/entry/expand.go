package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/penny/internal/calendar"
)

// Template holds the frequency-invariant fields of a recurring series. It is
// never stored itself; Expand turns it into concrete entries.
type Template struct {
	OwnerID     uuid.UUID
	Kind        Kind
	Source      string
	Category    Category
	Subcategory string
	Amount      decimal.Decimal
	Frequency   Frequency
	DueDay      int
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
}

func (t Template) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}

	if t.Kind == KindExpense && !t.Category.Valid() {
		return ErrInvalidCategory
	}

	if !t.Frequency.Valid() {
		return ErrInvalidFrequency
	}

	if t.DueDay != 0 && (t.DueDay < 1 || t.DueDay > 31) {
		return ErrInvalidDueDay
	}

	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}

// Range is the target period for an expansion. A zero end defaults to
// December of the starting year.
type Range struct {
	StartMonth int
	StartYear  int
	EndMonth   int
	EndYear    int
}

func (r Range) withDefaults() Range {
	if r.EndMonth == 0 || r.EndYear == 0 {
		r.EndMonth = 12
		r.EndYear = r.StartYear
	}

	return r
}

func (r Range) validate() error {
	if r.StartMonth < 1 || r.StartMonth > 12 || r.EndMonth < 1 || r.EndMonth > 12 {
		return ErrInvalidMonth
	}

	return nil
}

// Expand generates one concrete entry per occurrence of the template across
// the range, in ascending (year, month) order. The starting month is always
// emitted first, regardless of what the frequency stepping would produce, so
// the initiating period is never skipped. Subsequent occurrences come from
// advancing a fractional month cursor (see Frequency.StepMonths) and flooring
// it to a storage month, until the cursor passes the end of the range or the
// whole-month span of the range has been consumed.
//
// today is the reference for the per-occurrence paid derivation: an expense
// occurrence whose resolved due date is on or before today is generated as
// already paid.
func Expand(t Template, r Range, today time.Time) ([]Entry, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	r = r.withDefaults()
	if err := r.validate(); err != nil {
		return nil, err
	}

	entries := []Entry{t.occurrence(r.StartMonth, r.StartYear, today)}

	step := t.Frequency.StepMonths()
	if step == 0 {
		return entries, nil
	}

	totalMonths := (r.EndYear-r.StartYear)*12 + (r.EndMonth - r.StartMonth)

	cursor := float64(r.StartMonth)
	year := r.StartYear

	for i := 0; i < totalMonths; i++ {
		cursor, year = calendar.Advance(cursor, year, step)

		month := calendar.MonthOf(cursor)
		if year > r.EndYear || (year == r.EndYear && month > r.EndMonth) {
			break
		}

		entries = append(entries, t.occurrence(month, year, today))
	}

	return entries, nil
}

// occurrence builds the concrete entry for one (month, year) of the series.
func (t Template) occurrence(month, year int, today time.Time) Entry {
	e := Entry{
		OwnerID:     t.OwnerID,
		Kind:        t.Kind,
		Source:      t.Source,
		Category:    t.Category,
		Subcategory: t.Subcategory,
		Amount:      t.Amount,
		Month:       month,
		Year:        year,
		Recurring:   true,
		Frequency:   t.Frequency,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		DueDay:      t.DueDay,
		Description: t.Description,
	}

	if t.Kind == KindExpense && t.DueDay > 0 {
		day := calendar.ClampDay(t.DueDay, year, month)
		due := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		e.DueDate = &due

		// Past and current due dates count as settled at generation time;
		// the flag is the user's to toggle afterwards.
		ref := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		e.IsPaid = !due.After(ref)
	}

	return e
}
