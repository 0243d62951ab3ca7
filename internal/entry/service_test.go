package entry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/penny/internal/entry"
)

func TestService_Create_Single(t *testing.T) {
	type testCase struct {
		name      string
		params    entry.CreateParams
		setupMock func(m *entry.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: entry.CreateParams{
				Kind:   entry.KindIncome,
				Source: "Salary",
				Amount: decimal.NewFromInt(2500),
				Month:  3,
				Year:   2024,
			},
			setupMock: func(m *entry.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *entry.Entry) error {
						e.ID = uuid.New()
						e.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "InvalidMonth",
			params: entry.CreateParams{
				Kind:   entry.KindIncome,
				Source: "Salary",
				Amount: decimal.NewFromInt(2500),
				Month:  13,
				Year:   2024,
			},
			wantErr: entry.ErrInvalidMonth,
		},
		{
			name: "ExpenseMissingCategory",
			params: entry.CreateParams{
				Kind:   entry.KindExpense,
				Amount: decimal.NewFromInt(50),
				Month:  3,
				Year:   2024,
			},
			wantErr: entry.ErrInvalidCategory,
		},
		{
			name: "RecurringWithoutFrequency",
			params: entry.CreateParams{
				Kind:      entry.KindIncome,
				Source:    "Salary",
				Amount:    decimal.NewFromInt(2500),
				Month:     3,
				Year:      2024,
				Recurring: true,
			},
			wantErr: entry.ErrInvalidFrequency,
		},
		{
			name: "RepoError",
			params: entry.CreateParams{
				Kind:   entry.KindIncome,
				Source: "Salary",
				Amount: decimal.NewFromInt(2500),
				Month:  3,
				Year:   2024,
			},
			setupMock: func(m *entry.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := entry.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := entry.NewService(repo)
			got, err := svc.Create(context.Background(), uuid.New(), tt.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.NotEmpty(t, got[0].ID)
		})
	}
}

func TestService_Create_SingleExpenseDerivesPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := entry.NewMockRepository(ctrl)

	var stored *entry.Entry

	repo.EXPECT().
		CreateEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *entry.Entry) error {
			stored = e
			return nil
		})

	svc := entry.NewService(repo)

	// A due day in a long-past month resolves to a paid entry.
	_, err := svc.Create(context.Background(), uuid.New(), entry.CreateParams{
		Kind:     entry.KindExpense,
		Category: entry.CategoryFixed,
		Amount:   decimal.NewFromInt(900),
		Month:    1,
		Year:     2020,
		DueDay:   15,
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.DueDate)
	assert.Equal(t, time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), *stored.DueDate)
	assert.True(t, stored.IsPaid)
}

func TestService_Create_RecurringExpandsIntoBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := entry.NewMockRepository(ctrl)
	btx := entry.NewMockBatchTx(ctrl)
	svc := entry.NewService(repo)

	var batched []*entry.Entry

	repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
	btx.EXPECT().
		CreateEntries(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entries []*entry.Entry) error {
			batched = entries
			return nil
		})
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	owner := uuid.New()

	got, err := svc.Create(context.Background(), owner, entry.CreateParams{
		Kind:        entry.KindExpense,
		Category:    entry.CategorySubscription,
		Subcategory: "Streaming",
		Amount:      decimal.NewFromInt(15),
		Month:       1,
		Year:        2024,
		Recurring:   true,
		Frequency:   entry.FrequencyMonthly,
		EndMonth:    3,
		EndYear:     2024,
		DueDay:      1,
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, got, batched)

	for _, e := range got {
		assert.Equal(t, owner, e.OwnerID)
		assert.True(t, e.Recurring)
	}
}

func TestService_Create_RecurringBatchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := entry.NewMockRepository(ctrl)
	btx := entry.NewMockBatchTx(ctrl)
	svc := entry.NewService(repo)

	repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
	btx.EXPECT().CreateEntries(gomock.Any(), gomock.Any()).Return(errors.New("write failed"))
	btx.EXPECT().Rollback().Return(nil)

	_, err := svc.Create(context.Background(), uuid.New(), entry.CreateParams{
		Kind:      entry.KindIncome,
		Source:    "Salary",
		Amount:    decimal.NewFromInt(2500),
		Month:     1,
		Year:      2024,
		Recurring: true,
		Frequency: entry.FrequencyMonthly,
	})
	assert.Error(t, err)
}

func TestService_CreateMany(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := entry.NewMockRepository(ctrl)
	btx := entry.NewMockBatchTx(ctrl)
	svc := entry.NewService(repo)

	repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
	btx.EXPECT().CreateEntries(gomock.Any(), gomock.Len(2)).Return(nil)
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	owner := uuid.New()

	got, err := svc.CreateMany(context.Background(), owner, []entry.CreateParams{
		{
			Kind:        entry.KindExpense,
			Category:    entry.CategoryVariable,
			Amount:      decimal.NewFromFloat(56.10),
			Month:       1,
			Year:        2024,
			DueDay:      12,
			Description: "Groceries",
		},
		{
			Kind:        entry.KindExpense,
			Category:    entry.CategoryFixed,
			Amount:      decimal.NewFromFloat(82.40),
			Month:       1,
			Year:        2024,
			DueDay:      5,
			Description: "Electricity",
		},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	for _, e := range got {
		assert.Equal(t, owner, e.OwnerID)
	}
}

func TestService_CreateMany_InvalidRowRejectsAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := entry.NewMockRepository(ctrl)
	svc := entry.NewService(repo)

	_, err := svc.CreateMany(context.Background(), uuid.New(), []entry.CreateParams{
		{
			Kind:     entry.KindExpense,
			Category: entry.CategoryVariable,
			Amount:   decimal.NewFromInt(10),
			Month:    1,
			Year:     2024,
		},
		{
			Kind:     entry.KindExpense,
			Category: entry.CategoryVariable,
			Amount:   decimal.NewFromInt(10),
			Month:    13,
			Year:     2024,
		},
	})
	assert.ErrorIs(t, err, entry.ErrInvalidMonth)
}

func TestService_Get_OwnershipEnforced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := entry.NewMockRepository(ctrl)
	svc := entry.NewService(repo)

	owner := uuid.New()
	id := uuid.New()

	repo.EXPECT().GetEntry(gomock.Any(), id).Return(&entry.Entry{ID: id, OwnerID: uuid.New()}, nil)

	_, err := svc.Get(context.Background(), owner, id)
	assert.ErrorIs(t, err, entry.ErrNotOwner)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := entry.NewMockRepository(ctrl)
	svc := entry.NewService(repo)

	owner := uuid.New()
	id := uuid.New()

	repo.EXPECT().GetEntry(gomock.Any(), id).Return(&entry.Entry{ID: id, OwnerID: owner}, nil)
	repo.EXPECT().DeleteEntry(gomock.Any(), id).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), owner, id))
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := entry.NewMockRepository(ctrl)
	svc := entry.NewService(repo)

	id := uuid.New()
	repo.EXPECT().GetEntry(gomock.Any(), id).Return(nil, entry.ErrNotFound)

	err := svc.Delete(context.Background(), uuid.New(), id)
	assert.ErrorIs(t, err, entry.ErrNotFound)
}

func TestService_SetPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := entry.NewMockRepository(ctrl)
	svc := entry.NewService(repo)

	owner := uuid.New()
	id := uuid.New()

	repo.EXPECT().GetEntry(gomock.Any(), id).Return(&entry.Entry{ID: id, OwnerID: owner}, nil)
	repo.EXPECT().UpdateIsPaid(gomock.Any(), id, true).Return(nil)

	require.NoError(t, svc.SetPaid(context.Background(), owner, id, true))
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := entry.NewMockRepository(ctrl)
	svc := entry.NewService(repo)

	owner := uuid.New()
	id := uuid.New()
	actual := decimal.NewFromFloat(52.30)

	repo.EXPECT().GetEntry(gomock.Any(), id).Return(&entry.Entry{
		ID:      id,
		OwnerID: owner,
		Kind:    entry.KindExpense,
		Amount:  decimal.NewFromInt(50),
	}, nil)
	repo.EXPECT().UpdateEntry(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Update(context.Background(), owner, id, entry.UpdateParams{
		ActualAmount: &actual,
	})
	require.NoError(t, err)
	require.NotNil(t, got.ActualAmount)
	assert.True(t, actual.Equal(*got.ActualAmount))
	assert.True(t, actual.Equal(got.EffectiveAmount()))
}
