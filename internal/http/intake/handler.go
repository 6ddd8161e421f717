package intake

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kmutua/metertrack/internal/http/middleware"
	"github.com/kmutua/metertrack/internal/intake"
	"github.com/kmutua/metertrack/internal/meter"
)

type Handler struct {
	intakeSvc *intake.Service
	meterSvc  *meter.Service
}

func NewHandler(intakeSvc *intake.Service, meterSvc *meter.Service) *Handler {
	return &Handler{intakeSvc: intakeSvc, meterSvc: meterSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.preview)
	r.Post("/confirm", h.confirm)
}

type meterDTO struct {
	SerialNumber string `json:"serial_number"`
	Type         string `json:"type"`
}

type previewResponse struct {
	Count  int        `json:"count"`
	Meters []meterDTO `json:"meters"`
}

// preview parses an uploaded manifest without touching stock, so the
// operator can eyeball the serials before confirming.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	meters, err := h.intakeSvc.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out := make([]meterDTO, len(meters))
	for i, m := range meters {
		out[i] = meterDTO{SerialNumber: m.SerialNumber, Type: m.Type}
	}

	writeJSON(w, http.StatusOK, previewResponse{Count: len(out), Meters: out})
}

type confirmRequest struct {
	Meters []meterDTO `json:"meters"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	key := uuid.New()
	if header := r.Header.Get("Idempotency-Key"); header != "" {
		parsed, err := uuid.Parse(header)
		if err != nil {
			http.Error(w, "invalid idempotency key", http.StatusBadRequest)
			return
		}

		key = parsed
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	meters := make([]meter.NewMeter, len(req.Meters))
	for i, m := range req.Meters {
		meters[i] = meter.NewMeter{SerialNumber: m.SerialNumber, Type: m.Type}
	}

	if err := h.meterSvc.AddMeters(r.Context(), meter.AddMetersParams{
		ActorID:        actor.ID,
		IdempotencyKey: key,
		Meters:         meters,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"added": len(meters)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
