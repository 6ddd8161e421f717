package meter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kmutua/metertrack/internal/http/middleware"
	"github.com/kmutua/metertrack/internal/meter"
)

type Handler struct {
	svc *meter.Service
}

func NewHandler(svc *meter.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/exists", h.exists)
	r.Post("/stock", h.addMeters)
	r.Post("/assignments", h.assign)
	r.Post("/agent-returns", h.returnFromAgent)
	r.Post("/sales", h.sell)
	r.Post("/sold-returns", h.returnSold)
	r.Post("/faults/{id}/resolution", h.resolveFault)
	r.Get("/agents/{id}/inventory", h.agentInventory)
	r.Delete("/agents/{id}", h.deleteAgent)
}

// writeLifecycleError maps engine errors onto status codes.
func writeLifecycleError(w http.ResponseWriter, err error) {
	var verr *meter.ValidationError

	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, meter.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, meter.ErrDuplicateSerial), errors.Is(err, meter.ErrDuplicateOperation):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, meter.ErrAccountDeactivated):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// idempotencyKey reads the Idempotency-Key header. Requests without one get
// a fresh key, so only clients that send the header get replay protection.
func idempotencyKey(r *http.Request) (uuid.UUID, error) {
	header := r.Header.Get("Idempotency-Key")
	if header == "" {
		return uuid.New(), nil
	}

	return uuid.Parse(header)
}

func (h *Handler) exists(w http.ResponseWriter, r *http.Request) {
	serial := r.URL.Query().Get("serial")
	if serial == "" {
		http.Error(w, "serial query parameter is required", http.StatusBadRequest)
		return
	}

	found, err := h.svc.CheckMeterExists(r.Context(), serial)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"exists": found})
}

type newMeterDTO struct {
	SerialNumber string `json:"serial_number"`
	Type         string `json:"type"`
}

type addMetersRequest struct {
	Meters []newMeterDTO `json:"meters"`
}

func (h *Handler) addMeters(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	key, err := idempotencyKey(r)
	if err != nil {
		http.Error(w, "invalid idempotency key", http.StatusBadRequest)
		return
	}

	var req addMetersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	meters := make([]meter.NewMeter, len(req.Meters))
	for i, m := range req.Meters {
		meters[i] = meter.NewMeter{SerialNumber: m.SerialNumber, Type: m.Type}
	}

	if err := h.svc.AddMeters(r.Context(), meter.AddMetersParams{
		ActorID:        actor.ID,
		IdempotencyKey: key,
		Meters:         meters,
	}); err != nil {
		writeLifecycleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"added": len(meters)})
}

type assignRequest struct {
	AgentID uuid.UUID `json:"agent_id"`
	Serials []string  `json:"serials"`
}

type inventoryEntryResponse struct {
	SerialNumber string    `json:"serial_number"`
	Type         string    `json:"type"`
	AgentID      uuid.UUID `json:"agent_id"`
	AssignedAt   time.Time `json:"assigned_at"`
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	key, err := idempotencyKey(r)
	if err != nil {
		http.Error(w, "invalid idempotency key", http.StatusBadRequest)
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.svc.AssignToAgent(r.Context(), meter.AssignParams{
		ActorID:        actor.ID,
		IdempotencyKey: key,
		AgentID:        req.AgentID,
		Serials:        req.Serials,
	})
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInventoryResponse(entries))
}

type returnFromAgentRequest struct {
	AgentID uuid.UUID `json:"agent_id"`
	Serials []string  `json:"serials"`
}

func (h *Handler) returnFromAgent(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	key, err := idempotencyKey(r)
	if err != nil {
		http.Error(w, "invalid idempotency key", http.StatusBadRequest)
		return
	}

	var req returnFromAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.ReturnFromAgent(r.Context(), meter.ReturnFromAgentParams{
		ActorID:        actor.ID,
		IdempotencyKey: key,
		AgentID:        req.AgentID,
		Serials:        req.Serials,
	}); err != nil {
		writeLifecycleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"returned": len(req.Serials)})
}

type saleItemDTO struct {
	SerialNumber string          `json:"serial_number"`
	Type         string          `json:"type"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

type sellRequest struct {
	Source          meter.SaleSource `json:"source"`
	AgentID         uuid.UUID        `json:"agent_id,omitempty"`
	Destination     string           `json:"destination"`
	Recipient       string           `json:"recipient"`
	CustomerContact string           `json:"customer_contact"`
	CustomerType    string           `json:"customer_type"`
	CustomerCounty  string           `json:"customer_county"`
	SaleDate        time.Time        `json:"sale_date"`
	Items           []saleItemDTO    `json:"items"`
}

type sellResponse struct {
	ReferenceNumber string `json:"reference_number"`
	Batches         int    `json:"batches"`
	Receipt         string `json:"receipt"`
}

func (h *Handler) sell(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	key, err := idempotencyKey(r)
	if err != nil {
		http.Error(w, "invalid idempotency key", http.StatusBadRequest)
		return
	}

	var req sellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]meter.SaleItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = meter.SaleItem{SerialNumber: it.SerialNumber, Type: it.Type, UnitPrice: it.UnitPrice}
	}

	result, err := h.svc.Sell(r.Context(), meter.SellParams{
		ActorID:        actor.ID,
		IdempotencyKey: key,
		Source:         req.Source,
		AgentID:        req.AgentID,
		Details: meter.SaleDetails{
			Destination:     req.Destination,
			Recipient:       req.Recipient,
			CustomerContact: req.CustomerContact,
			CustomerType:    req.CustomerType,
			CustomerCounty:  req.CustomerCounty,
			SaleDate:        req.SaleDate,
		},
		Items: items,
	})
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sellResponse{
		ReferenceNumber: result.Transaction.ReferenceNumber,
		Batches:         len(result.Batches),
		Receipt:         meter.Receipt(result),
	})
}

type soldReturnDTO struct {
	SerialNumber      string `json:"serial_number"`
	Faulty            bool   `json:"faulty"`
	FaultDescription  string `json:"fault_description,omitempty"`
	ReplacementSerial string `json:"replacement_serial,omitempty"`
}

type returnSoldRequest struct {
	Returns []soldReturnDTO `json:"returns"`
}

func (h *Handler) returnSold(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	key, err := idempotencyKey(r)
	if err != nil {
		http.Error(w, "invalid idempotency key", http.StatusBadRequest)
		return
	}

	var req returnSoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	returns := make([]meter.SoldReturn, len(req.Returns))
	for i, ret := range req.Returns {
		returns[i] = meter.SoldReturn{
			SerialNumber:      ret.SerialNumber,
			Faulty:            ret.Faulty,
			FaultDescription:  ret.FaultDescription,
			ReplacementSerial: ret.ReplacementSerial,
		}
	}

	if err := h.svc.ReturnSold(r.Context(), meter.ReturnSoldParams{
		ActorID:        actor.ID,
		IdempotencyKey: key,
		Returns:        returns,
	}); err != nil {
		writeLifecycleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"processed": len(returns)})
}

type resolveFaultRequest struct {
	Outcome meter.FaultStatus `json:"outcome"`
}

func (h *Handler) resolveFault(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	key, err := idempotencyKey(r)
	if err != nil {
		http.Error(w, "invalid idempotency key", http.StatusBadRequest)
		return
	}

	var req resolveFaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.ResolveFault(r.Context(), meter.ResolveFaultParams{
		ActorID:        actor.ID,
		IdempotencyKey: key,
		FaultID:        id,
		Outcome:        req.Outcome,
	}); err != nil {
		writeLifecycleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) agentInventory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entries, err := h.svc.AgentInventory(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toInventoryResponse(entries))
}

type deleteAgentRequest struct {
	ScannedSerials []string `json:"scanned_serials"`
	Unscanned      []string `json:"unscanned_serials"`
}

type deleteAgentResponse struct {
	Restored   int `json:"restored"`
	WrittenOff int `json:"written_off"`
}

func (h *Handler) deleteAgent(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	key, err := idempotencyKey(r)
	if err != nil {
		http.Error(w, "invalid idempotency key", http.StatusBadRequest)
		return
	}

	var req deleteAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.DeleteAgent(r.Context(), meter.DeleteAgentParams{
		ActorID:        actor.ID,
		IdempotencyKey: key,
		AgentID:        id,
		ScannedSerials: req.ScannedSerials,
		Unscanned:      req.Unscanned,
	})
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteAgentResponse{
		Restored:   result.Restored,
		WrittenOff: result.WrittenOff,
	})
}

func toInventoryResponse(entries []meter.AgentInventoryEntry) []inventoryEntryResponse {
	out := make([]inventoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = inventoryEntryResponse{
			SerialNumber: e.SerialNumber,
			Type:         e.Type,
			AgentID:      e.AgentID,
			AssignedAt:   e.AssignedAt,
		}
	}

	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
