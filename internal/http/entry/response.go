package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/penny/internal/entry"
)

type entryResponse struct {
	ID           uuid.UUID        `json:"id"`
	Kind         entry.Kind       `json:"kind"`
	Source       string           `json:"source,omitempty"`
	Category     entry.Category   `json:"category,omitempty"`
	Subcategory  string           `json:"subcategory,omitempty"`
	Amount       decimal.Decimal  `json:"amount"`
	ActualAmount *decimal.Decimal `json:"actual_amount,omitempty"`
	Month        int              `json:"month"`
	Year         int              `json:"year"`
	Recurring    bool             `json:"recurring"`
	Frequency    entry.Frequency  `json:"frequency,omitempty"`
	StartDate    *time.Time       `json:"start_date,omitempty"`
	EndDate      *time.Time       `json:"end_date,omitempty"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	DueDay       int              `json:"due_day,omitempty"`
	IsPaid       bool             `json:"is_paid"`
	Description  string           `json:"description,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(e *entry.Entry) entryResponse {
	return entryResponse{
		ID:           e.ID,
		Kind:         e.Kind,
		Source:       e.Source,
		Category:     e.Category,
		Subcategory:  e.Subcategory,
		Amount:       e.Amount,
		ActualAmount: e.ActualAmount,
		Month:        e.Month,
		Year:         e.Year,
		Recurring:    e.Recurring,
		Frequency:    e.Frequency,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		DueDate:      e.DueDate,
		DueDay:       e.DueDay,
		IsPaid:       e.IsPaid,
		Description:  e.Description,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toResponseList(entries []*entry.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}
