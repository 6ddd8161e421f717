package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kmutua/metertrack/internal/agent"
	"github.com/kmutua/metertrack/internal/http/middleware"
	"github.com/kmutua/metertrack/internal/user"
)

type Handler struct {
	svc   *agent.Service
	users *user.Service
}

func NewHandler(svc *agent.Service, users *user.Service) *Handler {
	return &Handler{svc: svc, users: users}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/deactivate", h.deactivate)
	r.Post("/{id}/reactivate", h.reactivate)
}

type agentResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Location      string    `json:"location"`
	County        string    `json:"county"`
	Active        bool      `json:"active"`
	CreatedBy     uuid.UUID `json:"created_by"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toResponse(a *agent.Agent, names map[uuid.UUID]string) agentResponse {
	return agentResponse{
		ID:            a.ID,
		Name:          a.Name,
		Phone:         a.Phone,
		Location:      a.Location,
		County:        a.County,
		Active:        a.Active,
		CreatedBy:     a.CreatedBy,
		CreatedByName: names[a.CreatedBy],
		CreatedAt:     a.CreatedAt,
	}
}

type createAgentRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	County   string `json:"county"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var req createAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Create(r.Context(), agent.CreateParams{
		Name:      req.Name,
		Phone:     req.Phone,
		Location:  req.Location,
		County:    req.County,
		CreatedBy: actor.ID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(a, map[uuid.UUID]string{actor.ID: actor.Name}))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := agent.ListFilter{}

	if c := r.URL.Query().Get("county"); c != "" {
		filter.County = new(c)
	}

	if r.URL.Query().Get("active") == "true" {
		filter.ActiveOnly = true
	}

	agents, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	creatorIDs := make([]uuid.UUID, len(agents))
	for i, a := range agents {
		creatorIDs[i] = a.CreatedBy
	}

	names, err := h.users.Names(r.Context(), creatorIDs)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]agentResponse, len(agents))
	for i, a := range agents {
		out[i] = toResponse(a, names)
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, agent.ErrNotFound) {
			http.Error(w, "agent not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	names, err := h.users.Names(r.Context(), []uuid.UUID{a.CreatedBy})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(a, names))
}

type updateAgentRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	County   *string `json:"county,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, agent.ErrNotFound) {
			http.Error(w, "agent not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	var req updateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		a.Name = *req.Name
	}

	if req.Phone != nil {
		a.Phone = *req.Phone
	}

	if req.Location != nil {
		a.Location = *req.Location
	}

	if req.County != nil {
		a.County = *req.County
	}

	if err := h.svc.Update(r.Context(), a); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(a, nil))
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.svc.Deactivate)
}

func (h *Handler) reactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.svc.Reactivate)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := op(r.Context(), id); err != nil {
		if errors.Is(err, agent.ErrNotFound) {
			http.Error(w, "agent not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
