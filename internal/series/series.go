// Package series identifies and deletes the stored occurrences of a
// recurring entry series. Occurrences carry no series identifier, so
// membership is recovered by exact field matching against a representative
// record.
package series

import (
	"errors"
	"slices"

	"github.com/MrJamesThe3rd/penny/internal/entry"
)

var ErrNotRecurring = errors.New("entry is not part of a recurring series")

// FindSeries returns the corpus entries that belong to the same recurring
// series as the representative: same kind, labels, amount, frequency and due
// day, all matched exactly. Results are sorted ascending by (year, month).
func FindSeries(rep *entry.Entry, corpus []*entry.Entry) []*entry.Entry {
	var matches []*entry.Entry

	for _, e := range corpus {
		if sameSeries(rep, e) {
			matches = append(matches, e)
		}
	}

	slices.SortStableFunc(matches, func(a, b *entry.Entry) int {
		if a.Year != b.Year {
			return a.Year - b.Year
		}

		return a.Month - b.Month
	})

	return matches
}

func sameSeries(rep, e *entry.Entry) bool {
	return e.Recurring &&
		e.Kind == rep.Kind &&
		e.Source == rep.Source &&
		e.Category == rep.Category &&
		e.Subcategory == rep.Subcategory &&
		e.Amount.Equal(rep.Amount) &&
		e.Frequency == rep.Frequency &&
		e.DueDay == rep.DueDay
}

// Partition selects the matches to delete: all of them, or those falling on
// or after the cutoff month.
func Partition(matches []*entry.Entry, deleteAll bool, cutoffMonth, cutoffYear int) []*entry.Entry {
	if deleteAll {
		return matches
	}

	var selected []*entry.Entry

	for _, e := range matches {
		if e.Year > cutoffYear || (e.Year == cutoffYear && e.Month >= cutoffMonth) {
			selected = append(selected, e)
		}
	}

	return selected
}
