// Package api provides the HTTP handlers for the confmesh API.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/confmesh/confmesh/backend"
	"github.com/confmesh/confmesh/core"
	"github.com/confmesh/confmesh/engine"
	"github.com/confmesh/confmesh/logging"
	"github.com/confmesh/confmesh/registry"
)

// Handler serves the chat and introspection endpoints.
type Handler struct {
	engine *engine.Engine
	store  core.SessionStore
	data   backend.DataAccess
	logger logging.Logger
}

// NewHandler creates a Handler over the orchestration engine and its
// backing services.
func NewHandler(e *engine.Engine, store core.SessionStore, data backend.DataAccess, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Handler{engine: e, store: store, data: data, logger: logger}
}

// RegisterRoutes mounts all endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/agents", h.handleAgents)
	r.Get("/user/{identifier}", h.handleUser)
	r.Get("/organization/{id}", h.handleOrganization)
	r.Get("/conversation/{id}", h.handleConversation)
	r.Get("/health", h.handleHealth)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req engine.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.engine.ProcessChat(r.Context(), req)
	if err != nil {
		h.logger.Error("api.chat.failed", "error", err.Error())
		Error(w, http.StatusInternalServerError, "failed to process chat")
		return
	}
	JSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAgents(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{"agents": registry.SerializeAll()})
}

func (h *Handler) handleUser(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	identity, err := h.data.LookupIdentity(r.Context(), identifier)
	if err != nil {
		h.logger.Error("api.user.lookup_failed", "error", err.Error())
		Error(w, http.StatusInternalServerError, "failed to look up user")
		return
	}
	if identity == nil {
		Error(w, http.StatusNotFound, "user not found")
		return
	}
	JSON(w, http.StatusOK, identity)
}

func (h *Handler) handleOrganization(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	org, err := h.data.Organization(r.Context(), id)
	if err != nil {
		h.logger.Error("api.organization.lookup_failed", "error", err.Error())
		Error(w, http.StatusInternalServerError, "failed to look up organization")
		return
	}
	if org == nil {
		Error(w, http.StatusNotFound, "organization not found")
		return
	}
	JSON(w, http.StatusOK, org)
}

func (h *Handler) handleConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sess, created, err := h.store.GetOrCreate(id)
	if err != nil {
		h.logger.Error("api.conversation.load_failed", "error", err.Error())
		Error(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}
	if created {
		Error(w, http.StatusNotFound, "conversation not found")
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"conversation_id": sess.ID,
		"current_agent":   sess.CurrentAgent,
		"messages":        sess.Messages,
		"events":          sess.Events,
		"context":         sess.Context,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
