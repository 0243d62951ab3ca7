package entry

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
	"github.com/MrJamesThe3rd/penny/internal/identity"
)

type Handler struct {
	svc *entry.Service
}

func NewHandler(svc *entry.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/paid", h.setPaid)
	r.Patch("/{id}", h.update)
}

type createEntryRequest struct {
	Kind        entry.Kind      `json:"kind"`
	Source      string          `json:"source,omitempty"`
	Category    entry.Category  `json:"category,omitempty"`
	Subcategory string          `json:"subcategory,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Recurring   bool            `json:"recurring,omitempty"`
	Frequency   entry.Frequency `json:"frequency,omitempty"`
	EndMonth    int             `json:"end_month,omitempty"`
	EndYear     int             `json:"end_year,omitempty"`
	DueDay      int             `json:"due_day,omitempty"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	res, ok := auth.ResolutionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.svc.Create(r.Context(), res.OwnerID, entry.CreateParams{
		Kind:        req.Kind,
		Source:      req.Source,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		Recurring:   req.Recurring,
		Frequency:   req.Frequency,
		EndMonth:    req.EndMonth,
		EndYear:     req.EndYear,
		DueDay:      req.DueDay,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	res, ok := auth.ResolutionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	filter := entry.ListFilter{OwnerID: res.OwnerID}

	if s := r.URL.Query().Get("kind"); s != "" {
		k := entry.Kind(s)
		filter.Kind = &k
	}

	if s := r.URL.Query().Get("category"); s != "" {
		c := entry.Category(s)
		filter.Category = &c
	}

	if s := r.URL.Query().Get("month"); s != "" {
		if m, err := strconv.Atoi(s); err == nil {
			filter.Month = &m
		}
	}

	if s := r.URL.Query().Get("year"); s != "" {
		if y, err := strconv.Atoi(s); err == nil {
			filter.Year = &y
		}
	}

	if s := r.URL.Query().Get("recurring"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			filter.Recurring = &b
		}
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	res, id, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	e, err := h.svc.Get(r.Context(), res.OwnerID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateEntryRequest struct {
	Source       *string          `json:"source,omitempty"`
	Subcategory  *string          `json:"subcategory,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	ActualAmount *decimal.Decimal `json:"actual_amount,omitempty"`
	Description  *string          `json:"description,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	res, id, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Update(r.Context(), res.OwnerID, id, entry.UpdateParams{
		Source:       req.Source,
		Subcategory:  req.Subcategory,
		Amount:       req.Amount,
		ActualAmount: req.ActualAmount,
		Description:  req.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setPaidRequest struct {
	IsPaid bool `json:"is_paid"`
}

func (h *Handler) setPaid(w http.ResponseWriter, r *http.Request) {
	res, id, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	var req setPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetPaid(r.Context(), res.OwnerID, id, req.IsPaid); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	res, id, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), res.OwnerID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requestScope pulls the owner resolution and {id} path param, writing the
// error response itself when either is missing.
func (h *Handler) requestScope(w http.ResponseWriter, r *http.Request) (identity.Resolution, uuid.UUID, bool) {
	res, ok := auth.ResolutionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return identity.Resolution{}, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return identity.Resolution{}, uuid.Nil, false
	}

	return res, id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entry.ErrNotFound):
		http.Error(w, "entry not found", http.StatusNotFound)
	case errors.Is(err, entry.ErrNotOwner):
		http.Error(w, "entry belongs to another owner", http.StatusForbidden)
	case errors.Is(err, entry.ErrInvalidKind),
		errors.Is(err, entry.ErrInvalidCategory),
		errors.Is(err, entry.ErrInvalidFrequency),
		errors.Is(err, entry.ErrInvalidDueDay),
		errors.Is(err, entry.ErrInvalidMonth),
		errors.Is(err, entry.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
