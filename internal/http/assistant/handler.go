package assistant

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kmutua/metertrack/internal/assistant"
	"github.com/kmutua/metertrack/internal/report"
)

type Handler struct {
	svc *assistant.Service
}

func NewHandler(svc *assistant.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/ask", h.ask)
}

type askRequest struct {
	Question string `json:"question"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
}

func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dr report.DateRange

	if req.From != "" {
		if t, err := time.Parse(time.DateOnly, req.From); err == nil {
			dr.From = new(t)
		}
	}

	if req.To != "" {
		if t, err := time.Parse(time.DateOnly, req.To); err == nil {
			dr.To = new(t)
		}
	}

	answer, err := h.svc.Ask(r.Context(), req.Question, dr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(answer); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
