package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/penny/internal/entry"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `
	id, owner_id, kind, source, category, subcategory, amount, actual_amount,
	month, year, recurring, frequency, start_date, end_date, due_date, due_day,
	is_paid, description, created_at, updated_at
`

// scanEntry reads an entry row in selectEntryColumns order.
func scanEntry(s scanner) (*entry.Entry, error) {
	var e entry.Entry

	var (
		kindStr, categoryStr, frequencyStr string
		source, subcategory, description   sql.NullString
		amount                             string
		actualAmount                       sql.NullString
		startDate, endDate, dueDate        sql.NullTime
	)

	if err := s.Scan(
		&e.ID, &e.OwnerID, &kindStr, &source, &categoryStr, &subcategory,
		&amount, &actualAmount,
		&e.Month, &e.Year, &e.Recurring, &frequencyStr,
		&startDate, &endDate, &dueDate, &e.DueDay,
		&e.IsPaid, &description, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Kind = entry.Kind(kindStr)
	e.Category = entry.Category(categoryStr)
	e.Frequency = entry.Frequency(frequencyStr)
	e.Source = source.String
	e.Subcategory = subcategory.String
	e.Description = description.String

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parsing amount: %w", err)
	}

	e.Amount = parsed

	if actualAmount.Valid {
		parsed, err := decimal.NewFromString(actualAmount.String)
		if err != nil {
			return nil, fmt.Errorf("parsing actual amount: %w", err)
		}

		e.ActualAmount = &parsed
	}

	e.StartDate = timePtr(startDate)
	e.EndDate = timePtr(endDate)
	e.DueDate = timePtr(dueDate)

	return &e, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}

	return &t.Time
}

func (s *Store) CreateEntry(ctx context.Context, e *entry.Entry) error {
	return createEntry(ctx, s.db, e)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func createEntry(ctx context.Context, db execer, e *entry.Entry) error {
	query := `
		INSERT INTO entries (owner_id, kind, source, category, subcategory, amount, actual_amount,
			month, year, recurring, frequency, start_date, end_date, due_date, due_day,
			is_paid, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := db.QueryRowContext(ctx, query,
		e.OwnerID, e.Kind, e.Source, e.Category, e.Subcategory,
		e.Amount.String(), actualAmountArg(e), e.Month, e.Year,
		e.Recurring, e.Frequency, e.StartDate, e.EndDate, e.DueDate, e.DueDay,
		e.IsPaid, e.Description,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}

	return nil
}

func actualAmountArg(e *entry.Entry) any {
	if e.ActualAmount == nil {
		return nil
	}

	return e.ActualAmount.String()
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*entry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM entries WHERE id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entry.ErrNotFound
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter entry.ListFilter) ([]*entry.Entry, error) {
	var (
		conds = []string{"owner_id = $1"}
		args  = []any{filter.OwnerID}
	)

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Kind != nil {
		add("kind = $%d", *filter.Kind)
	}

	if filter.Month != nil {
		add("month = $%d", *filter.Month)
	}

	if filter.Year != nil {
		add("year = $%d", *filter.Year)
	}

	if filter.Category != nil {
		add("category = $%d", *filter.Category)
	}

	if filter.Recurring != nil {
		add("recurring = $%d", *filter.Recurring)
	}

	query := `SELECT ` + selectEntryColumns + `
		FROM entries
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY year ASC, month ASC, due_date ASC NULLS LAST, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*entry.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Store) UpdateEntry(ctx context.Context, e *entry.Entry) error {
	query := `
		UPDATE entries
		SET source = $1, subcategory = $2, amount = $3, actual_amount = $4,
			description = $5, updated_at = NOW()
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		e.Source, e.Subcategory, e.Amount.String(), actualAmountArg(e),
		e.Description, e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	return nil
}

func (s *Store) UpdateIsPaid(ctx context.Context, id uuid.UUID, isPaid bool) error {
	query := `UPDATE entries SET is_paid = $1, updated_at = NOW() WHERE id = $2`

	_, err := s.db.ExecContext(ctx, query, isPaid, id)
	if err != nil {
		return fmt.Errorf("updating paid flag: %w", err)
	}

	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM entries WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entry.ErrNotFound
	}

	return nil
}

// BeginBatch opens an all-or-nothing write batch backed by a database
// transaction.
func (s *Store) BeginBatch(ctx context.Context) (entry.BatchTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning batch: %w", err)
	}

	return &batchTx{tx: tx}, nil
}

type batchTx struct {
	tx *sql.Tx
}

func (b *batchTx) CreateEntries(ctx context.Context, entries []*entry.Entry) error {
	for _, e := range entries {
		if err := createEntry(ctx, b.tx, e); err != nil {
			return err
		}
	}

	return nil
}

func (b *batchTx) DeleteEntries(ctx context.Context, ids []uuid.UUID) error {
	query := `DELETE FROM entries WHERE id = ANY($1::uuid[])`

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	if _, err := b.tx.ExecContext(ctx, query, strIDs); err != nil {
		return fmt.Errorf("deleting entries: %w", err)
	}

	return nil
}

func (b *batchTx) Commit() error {
	return b.tx.Commit()
}

func (b *batchTx) Rollback() error {
	return b.tx.Rollback()
}
