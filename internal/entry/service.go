package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/penny/internal/calendar"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=entry
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	UpdateEntry(ctx context.Context, e *Entry) error
	UpdateIsPaid(ctx context.Context, id uuid.UUID, isPaid bool) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)

	BeginBatch(ctx context.Context) (BatchTx, error)
}

// BatchTx groups writes into one all-or-nothing unit. A batch that fails
// partway leaves the store as it was before the batch started.
type BatchTx interface {
	CreateEntries(ctx context.Context, entries []*Entry) error
	DeleteEntries(ctx context.Context, ids []uuid.UUID) error
	Commit() error
	Rollback() error
}

// ListFilter narrows ListEntries by equality on the given fields. OwnerID is
// always required; nil pointers mean "any".
type ListFilter struct {
	OwnerID   uuid.UUID
	Kind      *Kind
	Month     *int
	Year      *int
	Category  *Category
	Recurring *bool
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateParams carries the caller-supplied fields for a new entry. For a
// recurring entry, Month/Year is the first period and EndMonth/EndYear bound
// the expansion (both optional, defaulting to December of the start year).
type CreateParams struct {
	Kind        Kind
	Source      string
	Category    Category
	Subcategory string
	Amount      decimal.Decimal
	Month       int
	Year        int
	Recurring   bool
	Frequency   Frequency
	EndMonth    int
	EndYear     int
	DueDay      int
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
}

func (p CreateParams) validate() error {
	if !p.Kind.Valid() {
		return ErrInvalidKind
	}

	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}

	if p.Kind == KindExpense && !p.Category.Valid() {
		return ErrInvalidCategory
	}

	if p.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	if p.DueDay != 0 && (p.DueDay < 1 || p.DueDay > 31) {
		return ErrInvalidDueDay
	}

	if p.Recurring && !p.Frequency.Valid() {
		return ErrInvalidFrequency
	}

	return nil
}

// Create validates and stores a new entry for the owner. A non-recurring
// entry produces exactly one record; a recurring one is expanded into one
// record per occurrence and written as a single batch.
func (s *Service) Create(ctx context.Context, owner uuid.UUID, params CreateParams) ([]*Entry, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	if !params.Recurring {
		e := s.single(owner, params)
		if err := s.repo.CreateEntry(ctx, e); err != nil {
			return nil, fmt.Errorf("creating entry: %w", err)
		}

		return []*Entry{e}, nil
	}

	expanded, err := Expand(Template{
		OwnerID:     owner,
		Kind:        params.Kind,
		Source:      params.Source,
		Category:    params.Category,
		Subcategory: params.Subcategory,
		Amount:      params.Amount,
		Frequency:   params.Frequency,
		DueDay:      params.DueDay,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Description: params.Description,
	}, Range{
		StartMonth: params.Month,
		StartYear:  params.Year,
		EndMonth:   params.EndMonth,
		EndYear:    params.EndYear,
	}, s.now())
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, len(expanded))
	for i := range expanded {
		entries[i] = &expanded[i]
	}

	btx, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	defer btx.Rollback()

	if err := btx.CreateEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("create entries: %w", err)
	}

	if err := btx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return entries, nil
}

func (s *Service) single(owner uuid.UUID, params CreateParams) *Entry {
	e := &Entry{
		OwnerID:     owner,
		Kind:        params.Kind,
		Source:      params.Source,
		Category:    params.Category,
		Subcategory: params.Subcategory,
		Amount:      params.Amount,
		Month:       params.Month,
		Year:        params.Year,
		DueDay:      params.DueDay,
		Description: params.Description,
	}

	if params.Kind == KindExpense && params.DueDay > 0 {
		day := calendar.ClampDay(params.DueDay, params.Year, params.Month)
		due := time.Date(params.Year, time.Month(params.Month), day, 0, 0, 0, 0, time.UTC)
		e.DueDate = &due

		now := s.now()
		ref := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		e.IsPaid = !due.After(ref)
	}

	return e
}

func (s *Service) Get(ctx context.Context, owner, id uuid.UUID) (*Entry, error) {
	e, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if e.OwnerID != owner {
		return nil, ErrNotOwner
	}

	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

// UpdateParams are the user-editable fields; nil means "leave unchanged".
type UpdateParams struct {
	Source       *string
	Subcategory  *string
	Amount       *decimal.Decimal
	ActualAmount *decimal.Decimal
	Description  *string
}

func (s *Service) Update(ctx context.Context, owner, id uuid.UUID, params UpdateParams) (*Entry, error) {
	e, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if params.Source != nil {
		e.Source = *params.Source
	}

	if params.Subcategory != nil {
		e.Subcategory = *params.Subcategory
	}

	if params.Amount != nil {
		if params.Amount.IsNegative() {
			return nil, ErrInvalidAmount
		}

		e.Amount = *params.Amount
	}

	if params.ActualAmount != nil {
		e.ActualAmount = params.ActualAmount
	}

	if params.Description != nil {
		e.Description = *params.Description
	}

	if err := s.repo.UpdateEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("updating entry: %w", err)
	}

	return e, nil
}

// SetPaid toggles the paid flag. The flag is derived from the due date only
// at creation time; after that it is entirely user-controlled.
func (s *Service) SetPaid(ctx context.Context, owner, id uuid.UUID, paid bool) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}

	return s.repo.UpdateIsPaid(ctx, id, paid)
}

func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}

	return s.repo.DeleteEntry(ctx, id)
}

// CreateMany validates and stores a set of non-recurring entries for the
// owner in one all-or-nothing batch. Used by the import flow, where each
// parsed row is one entry.
func (s *Service) CreateMany(ctx context.Context, owner uuid.UUID, params []CreateParams) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(params))

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		entries = append(entries, s.single(owner, p))
	}

	if err := s.CreateBatch(ctx, entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// CreateBatch stores pre-built entries (e.g. from a CSV import) in one
// all-or-nothing batch.
func (s *Service) CreateBatch(ctx context.Context, entries []*Entry) error {
	if len(entries) == 0 {
		return nil
	}

	btx, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer btx.Rollback()

	if err := btx.CreateEntries(ctx, entries); err != nil {
		return fmt.Errorf("create entries: %w", err)
	}

	if err := btx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	return nil
}
