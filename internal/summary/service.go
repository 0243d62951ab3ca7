package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/penny/internal/calendar"
	"github.com/MrJamesThe3rd/penny/internal/entry"
)

// firstSelectableYear anchors the year picker exposed to clients.
const firstSelectableYear = 2020

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=summary
type Repository interface {
	GetSummary(ctx context.Context, owner uuid.UUID, month, year int) (*Summary, error)
	UpsertSummary(ctx context.Context, s *Summary) error
}

// EntryLister is the slice of the entry repository the summary computation
// needs.
type EntryLister interface {
	ListEntries(ctx context.Context, filter entry.ListFilter) ([]*entry.Entry, error)
}

type Service struct {
	repo    Repository
	entries EntryLister
	now     func() time.Time
}

func NewService(repo Repository, entries EntryLister) *Service {
	return &Service{repo: repo, entries: entries, now: time.Now}
}

// Get returns the cached summary for the month, computing and storing it
// first if none exists. The cached figures always include pending entries;
// use Preview for a filtered view.
func (s *Service) Get(ctx context.Context, owner uuid.UUID, month, year int) (*Summary, error) {
	if month < 1 || month > 12 {
		return nil, entry.ErrInvalidMonth
	}

	cached, err := s.repo.GetSummary(ctx, owner, month, year)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("looking up summary: %w", err)
	}

	return s.Recompute(ctx, owner, month, year)
}

// Recompute rebuilds the summary from the month's full entry sets and
// overwrites whatever was cached. There is no incremental path: any entry
// change is picked up by the next recompute.
func (s *Service) Recompute(ctx context.Context, owner uuid.UUID, month, year int) (*Summary, error) {
	if month < 1 || month > 12 {
		return nil, entry.ErrInvalidMonth
	}

	incomes, expenses, err := s.monthEntries(ctx, owner, month, year)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		OwnerID: owner,
		Month:   month,
		Year:    year,
		Totals:  Summarize(incomes, expenses, true),
	}

	if err := s.repo.UpsertSummary(ctx, sum); err != nil {
		return nil, fmt.Errorf("storing summary: %w", err)
	}

	return sum, nil
}

// Preview computes the month's totals with the caller's pending filter
// applied, without touching the cache.
func (s *Service) Preview(ctx context.Context, owner uuid.UUID, month, year int, includePending bool) (Totals, error) {
	if month < 1 || month > 12 {
		return Totals{}, entry.ErrInvalidMonth
	}

	incomes, expenses, err := s.monthEntries(ctx, owner, month, year)
	if err != nil {
		return Totals{}, err
	}

	return Summarize(incomes, expenses, includePending), nil
}

// Years lists the selectable summary years for clients.
func (s *Service) Years() []int {
	return calendar.YearRange(firstSelectableYear, s.now())
}

// monthEntries fetches the month's income and expense sets. When the store
// cannot serve the month/year filter it falls back once to an owner-wide
// fetch and reduces in memory.
func (s *Service) monthEntries(ctx context.Context, owner uuid.UUID, month, year int) (incomes, expenses []*entry.Entry, err error) {
	all, err := s.entries.ListEntries(ctx, entry.ListFilter{
		OwnerID: owner,
		Month:   &month,
		Year:    &year,
	})
	if err != nil {
		if !errors.Is(err, entry.ErrUnsupportedFilter) {
			return nil, nil, fmt.Errorf("listing entries: %w", err)
		}

		all, err = s.entries.ListEntries(ctx, entry.ListFilter{OwnerID: owner})
		if err != nil {
			return nil, nil, fmt.Errorf("listing entries unfiltered: %w", err)
		}
	}

	for _, e := range all {
		if e.Month != month || e.Year != year {
			continue
		}

		switch e.Kind {
		case entry.KindIncome:
			incomes = append(incomes, e)
		case entry.KindExpense:
			expenses = append(expenses, e)
		}
	}

	return incomes, expenses, nil
}
