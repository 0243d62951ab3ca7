package series

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/penny/internal/entry"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=series
type EntryStore interface {
	GetEntry(ctx context.Context, id uuid.UUID) (*entry.Entry, error)
	ListEntries(ctx context.Context, filter entry.ListFilter) ([]*entry.Entry, error)
	BeginBatch(ctx context.Context) (entry.BatchTx, error)
}

type Service struct {
	store EntryStore
}

func NewService(store EntryStore) *Service {
	return &Service{store: store}
}

// DeleteParams selects which part of the series to remove. With All unset,
// occurrences on or after (CutoffMonth, CutoffYear) are removed.
type DeleteParams struct {
	All         bool
	CutoffMonth int
	CutoffYear  int
}

// DeleteSeries removes the recurring series the given entry belongs to, in a
// single all-or-nothing batch, and returns how many entries were deleted.
func (s *Service) DeleteSeries(ctx context.Context, owner, id uuid.UUID, params DeleteParams) (int, error) {
	if !params.All && (params.CutoffMonth < 1 || params.CutoffMonth > 12) {
		return 0, entry.ErrInvalidMonth
	}

	rep, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return 0, err
	}

	if rep.OwnerID != owner {
		return 0, entry.ErrNotOwner
	}

	if !rep.Recurring {
		return 0, ErrNotRecurring
	}

	recurring := true
	filter := entry.ListFilter{
		OwnerID:   owner,
		Kind:      &rep.Kind,
		Recurring: &recurring,
	}

	if rep.Kind == entry.KindExpense {
		filter.Category = &rep.Category
	}

	corpus, err := s.store.ListEntries(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing series candidates: %w", err)
	}

	selected := Partition(FindSeries(rep, corpus), params.All, params.CutoffMonth, params.CutoffYear)
	if len(selected) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, len(selected))
	for i, e := range selected {
		ids[i] = e.ID
	}

	btx, err := s.store.BeginBatch(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin batch: %w", err)
	}
	defer btx.Rollback()

	if err := btx.DeleteEntries(ctx, ids); err != nil {
		return 0, fmt.Errorf("delete entries: %w", err)
	}

	if err := btx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}

	return len(ids), nil
}
