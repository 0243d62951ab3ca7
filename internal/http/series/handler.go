package series

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/penny/internal/entry"
	"github.com/MrJamesThe3rd/penny/internal/http/auth"
	"github.com/MrJamesThe3rd/penny/internal/series"
)

type Handler struct {
	svc *series.Service
}

func NewHandler(svc *series.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Delete("/{id}", h.deleteSeries)
}

type deleteSeriesResponse struct {
	Deleted int `json:"deleted"`
}

// deleteSeries removes the recurring series the entry belongs to. With
// all=true every occurrence goes; otherwise cutoff_month and cutoff_year
// bound the removal to occurrences on or after that month.
func (h *Handler) deleteSeries(w http.ResponseWriter, r *http.Request) {
	res, ok := auth.ResolutionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	params := series.DeleteParams{}

	query := r.URL.Query()
	if s := query.Get("all"); s != "" {
		params.All, _ = strconv.ParseBool(s)
	}

	if !params.All {
		params.CutoffMonth, err = strconv.Atoi(query.Get("cutoff_month"))
		if err != nil {
			http.Error(w, "cutoff_month is required unless all=true", http.StatusBadRequest)
			return
		}

		params.CutoffYear, err = strconv.Atoi(query.Get("cutoff_year"))
		if err != nil {
			http.Error(w, "cutoff_year is required unless all=true", http.StatusBadRequest)
			return
		}
	}

	deleted, err := h.svc.DeleteSeries(r.Context(), res.OwnerID, id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(deleteSeriesResponse{Deleted: deleted}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entry.ErrNotFound):
		http.Error(w, "entry not found", http.StatusNotFound)
	case errors.Is(err, entry.ErrNotOwner):
		http.Error(w, "entry belongs to another owner", http.StatusForbidden)
	case errors.Is(err, series.ErrNotRecurring), errors.Is(err, entry.ErrInvalidMonth):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
