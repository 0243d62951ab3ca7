package summary

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/penny/internal/entry"
	"github.com/MrJamesThe3rd/penny/internal/http/auth"
	"github.com/MrJamesThe3rd/penny/internal/summary"
)

type Handler struct {
	svc *summary.Service
}

func NewHandler(svc *summary.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/years", h.years)
	r.Get("/{year}/{month}", h.get)
	r.Post("/{year}/{month}/recompute", h.recompute)
}

type totalsResponse struct {
	TotalIncome           decimal.Decimal `json:"total_income"`
	TotalFixedExpenses    decimal.Decimal `json:"total_fixed_expenses"`
	TotalVariableExpenses decimal.Decimal `json:"total_variable_expenses"`
	TotalSubscriptions    decimal.Decimal `json:"total_subscriptions"`
	PaidFixedExpenses     decimal.Decimal `json:"paid_fixed_expenses"`
	PaidVariableExpenses  decimal.Decimal `json:"paid_variable_expenses"`
	PaidSubscriptions     decimal.Decimal `json:"paid_subscriptions"`
	Balance               decimal.Decimal `json:"balance"`
}

type summaryResponse struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	totalsResponse
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toTotalsResponse(t summary.Totals) totalsResponse {
	return totalsResponse{
		TotalIncome:           t.TotalIncome,
		TotalFixedExpenses:    t.TotalFixedExpenses,
		TotalVariableExpenses: t.TotalVariableExpenses,
		TotalSubscriptions:    t.TotalSubscriptions,
		PaidFixedExpenses:     t.PaidFixedExpenses,
		PaidVariableExpenses:  t.PaidVariableExpenses,
		PaidSubscriptions:     t.PaidSubscriptions,
		Balance:               t.Balance,
	}
}

func toResponse(s *summary.Summary) summaryResponse {
	resp := summaryResponse{
		Month:          s.Month,
		Year:           s.Year,
		totalsResponse: toTotalsResponse(s.Totals),
		UpdatedAt:      s.UpdatedAt,
	}

	if !s.CreatedAt.IsZero() {
		resp.CreatedAt = &s.CreatedAt
	}

	return resp
}

// get serves the month's cached summary. When the include_pending query
// parameter is given, the totals are recomputed on the fly with that filter
// instead, leaving the cache untouched.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	owner, month, year, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	var resp summaryResponse

	if s := r.URL.Query().Get("include_pending"); s != "" {
		includePending, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "invalid include_pending", http.StatusBadRequest)
			return
		}

		totals, err := h.svc.Preview(r.Context(), owner, month, year, includePending)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp = summaryResponse{Month: month, Year: year, totalsResponse: toTotalsResponse(totals)}
	} else {
		sum, err := h.svc.Get(r.Context(), owner, month, year)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp = toResponse(sum)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request) {
	owner, month, year, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	sum, err := h.svc.Recompute(r.Context(), owner, month, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sum)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type yearsResponse struct {
	Years []int `json:"years"`
}

func (h *Handler) years(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.ResolutionFrom(r.Context()); !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(yearsResponse{Years: h.svc.Years()}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) requestScope(w http.ResponseWriter, r *http.Request) (owner uuid.UUID, month, year int, ok bool) {
	res, found := auth.ResolutionFrom(r.Context())
	if !found {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return uuid.Nil, 0, 0, false
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return uuid.Nil, 0, 0, false
	}

	month, err = strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return uuid.Nil, 0, 0, false
	}

	return res.OwnerID, month, year, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, entry.ErrInvalidMonth) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}
