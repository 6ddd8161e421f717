package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kmutua/metertrack/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/remaining", h.remaining)
	r.Get("/earnings", h.earnings)
	r.Get("/customer-types", h.customerTypes)
	r.Get("/agents/{id}/holdings", h.agentHoldings)
}

// dateRange reads the optional from/to query parameters (YYYY-MM-DD).
func dateRange(r *http.Request) report.DateRange {
	var dr report.DateRange

	if s := r.URL.Query().Get("from"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			dr.From = new(t)
		}
	}

	if s := r.URL.Query().Get("to"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			dr.To = new(t)
		}
	}

	return dr
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summarize(r.Context(), dateRange(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, summary)
}

func (h *Handler) remaining(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.RemainingByType(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, counts)
}

type earningsEntry struct {
	MeterType string `json:"meter_type"`
	Units     int    `json:"units"`
	Revenue   string `json:"revenue"`
}

func (h *Handler) earnings(w http.ResponseWriter, r *http.Request) {
	earnings, err := h.svc.EarningsByType(r.Context(), dateRange(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]earningsEntry, 0, len(earnings))
	for meterType, e := range earnings {
		out = append(out, earningsEntry{
			MeterType: meterType,
			Units:     e.Units,
			Revenue:   e.Revenue.StringFixed(2),
		})
	}

	writeJSON(w, out)
}

func (h *Handler) customerTypes(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.CustomerTypeCounts(r.Context(), dateRange(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, counts)
}

func (h *Handler) agentHoldings(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	counts, err := h.svc.AgentInventoryCountByType(r.Context(), &id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, counts)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
