package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/penny/internal/summary"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectSummaryColumns = `
	id, owner_id, month, year,
	total_income, total_fixed, total_variable, total_subscriptions,
	paid_fixed, paid_variable, paid_subscriptions, balance,
	created_at, updated_at
`

func (s *Store) GetSummary(ctx context.Context, owner uuid.UUID, month, year int) (*summary.Summary, error) {
	query := `SELECT ` + selectSummaryColumns + `
		FROM monthly_summaries
		WHERE owner_id = $1 AND month = $2 AND year = $3`

	var (
		sum summary.Summary
		raw [8]string
	)

	err := s.db.QueryRowContext(ctx, query, owner, month, year).Scan(
		&sum.ID, &sum.OwnerID, &sum.Month, &sum.Year,
		&raw[0], &raw[1], &raw[2], &raw[3],
		&raw[4], &raw[5], &raw[6], &raw[7],
		&sum.CreatedAt, &sum.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, summary.ErrNotFound
		}

		return nil, fmt.Errorf("getting summary: %w", err)
	}

	fields := []*decimal.Decimal{
		&sum.TotalIncome, &sum.TotalFixedExpenses, &sum.TotalVariableExpenses, &sum.TotalSubscriptions,
		&sum.PaidFixedExpenses, &sum.PaidVariableExpenses, &sum.PaidSubscriptions, &sum.Balance,
	}

	for i, f := range fields {
		parsed, err := decimal.NewFromString(raw[i])
		if err != nil {
			return nil, fmt.Errorf("parsing summary amount: %w", err)
		}

		*f = parsed
	}

	return &sum, nil
}

// UpsertSummary writes the summary for its (owner, month, year) key,
// replacing any previous figures. Uniqueness is by query-then-write, the
// caller being the only writer for its own key in normal operation.
func (s *Store) UpsertSummary(ctx context.Context, sum *summary.Summary) error {
	var existing uuid.UUID

	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM monthly_summaries WHERE owner_id = $1 AND month = $2 AND year = $3`,
		sum.OwnerID, sum.Month, sum.Year,
	).Scan(&existing)

	switch {
	case err == sql.ErrNoRows:
		return s.insert(ctx, sum)
	case err != nil:
		return fmt.Errorf("looking up summary: %w", err)
	}

	sum.ID = existing

	return s.update(ctx, sum)
}

func (s *Store) insert(ctx context.Context, sum *summary.Summary) error {
	query := `
		INSERT INTO monthly_summaries (owner_id, month, year,
			total_income, total_fixed, total_variable, total_subscriptions,
			paid_fixed, paid_variable, paid_subscriptions, balance,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sum.OwnerID, sum.Month, sum.Year,
		sum.TotalIncome.String(), sum.TotalFixedExpenses.String(),
		sum.TotalVariableExpenses.String(), sum.TotalSubscriptions.String(),
		sum.PaidFixedExpenses.String(), sum.PaidVariableExpenses.String(),
		sum.PaidSubscriptions.String(), sum.Balance.String(),
	).Scan(&sum.ID, &sum.CreatedAt, &sum.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting summary: %w", err)
	}

	return nil
}

func (s *Store) update(ctx context.Context, sum *summary.Summary) error {
	query := `
		UPDATE monthly_summaries
		SET total_income = $1, total_fixed = $2, total_variable = $3, total_subscriptions = $4,
			paid_fixed = $5, paid_variable = $6, paid_subscriptions = $7, balance = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sum.TotalIncome.String(), sum.TotalFixedExpenses.String(),
		sum.TotalVariableExpenses.String(), sum.TotalSubscriptions.String(),
		sum.PaidFixedExpenses.String(), sum.PaidVariableExpenses.String(),
		sum.PaidSubscriptions.String(), sum.Balance.String(),
		sum.ID,
	).Scan(&sum.CreatedAt, &sum.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating summary: %w", err)
	}

	return nil
}
