package search

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kmutua/metertrack/internal/search"
)

type Handler struct {
	svc *search.Service
}

func NewHandler(svc *search.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.search)
}

type hitResponse struct {
	SerialNumber string          `json:"serial_number"`
	MeterType    string          `json:"meter_type"`
	Location     search.Location `json:"location"`

	Stock *stockDTO `json:"stock,omitempty"`
	Agent *agentDTO `json:"agent,omitempty"`
	Sold  *soldDTO  `json:"sold,omitempty"`
	Fault *faultDTO `json:"fault,omitempty"`
}

type stockDTO struct {
	AdderName string    `json:"adder_name"`
	AddedAt   time.Time `json:"added_at"`
}

type agentDTO struct {
	AgentID    string    `json:"agent_id"`
	AgentName  string    `json:"agent_name"`
	AssignedAt time.Time `json:"assigned_at"`
}

type soldDTO struct {
	SoldAt             time.Time `json:"sold_at"`
	SellerName         string    `json:"seller_name"`
	Recipient          string    `json:"recipient"`
	UnitPrice          string    `json:"unit_price"`
	Status             string    `json:"status"`
	ReplacementSerial  string    `json:"replacement_serial,omitempty"`
	MatchedReplacement bool      `json:"matched_replacement,omitempty"`
}

type faultDTO struct {
	Status           string    `json:"status"`
	FaultDescription string    `json:"fault_description"`
	ReturnerName     string    `json:"returner_name"`
	ReturnedAt       time.Time `json:"returned_at"`
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "q query parameter is required", http.StatusBadRequest)
		return
	}

	hits, err := h.svc.Search(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out := make([]hitResponse, len(hits))
	for i, hit := range hits {
		out[i] = toResponse(hit)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(out); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toResponse(hit search.Hit) hitResponse {
	resp := hitResponse{
		SerialNumber: hit.SerialNumber,
		MeterType:    hit.MeterType,
		Location:     hit.Location,
	}

	switch {
	case hit.Stock != nil:
		resp.Stock = &stockDTO{AdderName: hit.Stock.AdderName, AddedAt: hit.Stock.AddedAt}
	case hit.Agent != nil:
		resp.Agent = &agentDTO{
			AgentID:    hit.Agent.AgentID.String(),
			AgentName:  hit.Agent.AgentName,
			AssignedAt: hit.Agent.AssignedAt,
		}
	case hit.Sold != nil:
		resp.Sold = &soldDTO{
			SoldAt:             hit.Sold.SoldAt,
			SellerName:         hit.Sold.SellerName,
			Recipient:          hit.Sold.Recipient,
			UnitPrice:          hit.Sold.UnitPrice.StringFixed(2),
			Status:             hit.Sold.Status,
			ReplacementSerial:  hit.Sold.ReplacementSerial,
			MatchedReplacement: hit.Sold.MatchedReplacement,
		}
	case hit.Fault != nil:
		resp.Fault = &faultDTO{
			Status:           hit.Fault.Status,
			FaultDescription: hit.Fault.FaultDescription,
			ReturnerName:     hit.Fault.ReturnerName,
			ReturnedAt:       hit.Fault.ReturnedAt,
		}
	}

	return resp
}
