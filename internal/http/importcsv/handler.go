package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/penny/internal/entry"
	"github.com/MrJamesThe3rd/penny/internal/http/auth"
	"github.com/MrJamesThe3rd/penny/internal/importer"
)

type Handler struct {
	importSvc *importer.Service
	entrySvc  *entry.Service
}

func NewHandler(importSvc *importer.Service, entrySvc *entry.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		entrySvc:  entrySvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importFile)
}

type importedEntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    entry.Category  `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	DueDay      int             `json:"due_day"`
	Description string          `json:"description"`
}

type importSuccessResponse struct {
	Imported int                     `json:"imported"`
	Entries  []importedEntryResponse `json:"entries"`
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	res, ok := auth.ResolutionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.entrySvc.CreateMany(r.Context(), res.OwnerID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(entries []*entry.Entry) importSuccessResponse {
	responses := make([]importedEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, importedEntryResponse{
			ID:          e.ID,
			Category:    e.Category,
			Subcategory: e.Subcategory,
			Amount:      e.Amount,
			Month:       e.Month,
			Year:        e.Year,
			DueDay:      e.DueDay,
			Description: e.Description,
		})
	}

	return importSuccessResponse{
		Imported: len(entries),
		Entries:  responses,
	}
}
