package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mundiclass/backend/internal/client/domain"
	"github.com/mundiclass/backend/internal/client/usecase/command"
	"github.com/mundiclass/backend/internal/client/usecase/query"
	"github.com/mundiclass/backend/kafka"
	"github.com/mundiclass/backend/pkg/logger"
	"github.com/mundiclass/backend/pkg/middleware"
)

// ClientHandler handles HTTP requests for clients using CQRS pattern
type ClientHandler struct {
	createHandler *command.CreateClientHandler
	updateHandler *command.UpdateClientHandler
	deleteHandler *command.DeleteClientHandler

	getHandler  *query.GetClientHandler
	listHandler *query.ListClientsHandler

	repo           domain.ClientRepository
	kafkaPublisher *kafka.Publisher
	cache          *middleware.ResponseCache
}

// NewClientHandler creates a new client handler
func NewClientHandler(
	createHandler *command.CreateClientHandler,
	updateHandler *command.UpdateClientHandler,
	deleteHandler *command.DeleteClientHandler,
	getHandler *query.GetClientHandler,
	listHandler *query.ListClientsHandler,
	repo domain.ClientRepository,
) *ClientHandler {
	return &ClientHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		repo:          repo,
	}
}

// SetKafkaPublisher attaches an optional event publisher
func (h *ClientHandler) SetKafkaPublisher(p *kafka.Publisher) {
	h.kafkaPublisher = p
}

// SetResponseCache attaches an optional read cache
func (h *ClientHandler) SetResponseCache(c *middleware.ResponseCache) {
	h.cache = c
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/clients", h.cached(h.ListClients)).Methods("GET")
	router.HandleFunc("/api/clients/by-cedula/{cedula}", h.GetClientByCedula).Methods("GET")
	router.HandleFunc("/api/clients/{id}", h.cached(h.GetClient)).Methods("GET")

	router.HandleFunc("/api/clients", middleware.AuthMiddleware(h.CreateClient)).Methods("POST")
	router.HandleFunc("/api/clients/{id}", middleware.AuthMiddleware(h.UpdateClient)).Methods("PUT")
	router.HandleFunc("/api/clients/{id}", middleware.AdminMiddleware(h.DeleteClient)).Methods("DELETE")
}

func (h *ClientHandler) cached(next http.HandlerFunc) http.HandlerFunc {
	if h.cache == nil {
		return next
	}
	return h.cache.Middleware(next)
}

type clientRequest struct {
	Name     *string            `json:"name"`
	Cedula   *string            `json:"cedula"`
	Type     *domain.ClientType `json:"type"`
	Frequent *bool              `json:"frequent"`
	Phone    *string            `json:"phone"`
	Address  *string            `json:"address"`
	IsActive *bool              `json:"is_active"`
}

// CreateClient handles POST /api/clients
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Name == nil || req.Cedula == nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "name and cedula are required"})
		return
	}

	cmd := command.CreateClientCommand{
		Name:   *req.Name,
		Cedula: *req.Cedula,
	}
	if req.Type != nil {
		cmd.Type = *req.Type
	}
	if req.Frequent != nil {
		cmd.Frequent = *req.Frequent
	}
	if req.Phone != nil {
		cmd.Phone = *req.Phone
	}
	if req.Address != nil {
		cmd.Address = *req.Address
	}

	client, err := h.createHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create client")
		respondError(w, err)
		return
	}

	h.invalidateCache(r.Context())

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Client created successfully",
		Data:    client,
	})
}

// ListClients handles GET /api/clients
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListClientsQuery{
		Type:   r.URL.Query().Get("type"),
		Name:   r.URL.Query().Get("name"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := r.URL.Query().Get("frequent"); raw != "" {
		frequent, err := strconv.ParseBool(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid frequent flag"})
			return
		}
		q.Frequent = &frequent
	}

	clients, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list clients")
		respondError(w, err)
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"clients": clients,
			"total":   count,
		},
	})
}

// GetClient handles GET /api/clients/{id}
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid client ID"})
		return
	}

	client, err := h.getHandler.Handle(query.GetClientQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: client})
}

// GetClientByCedula handles GET /api/clients/by-cedula/{cedula}
func (h *ClientHandler) GetClientByCedula(w http.ResponseWriter, r *http.Request) {
	cedula := mux.Vars(r)["cedula"]

	client, err := h.getHandler.HandleByCedula(query.GetClientByCedulaQuery{Cedula: cedula})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: client})
}

// UpdateClient handles PUT /api/clients/{id}
func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid client ID"})
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	client, err := h.updateHandler.Handle(command.UpdateClientCommand{
		ID:       id,
		Name:     req.Name,
		Cedula:   req.Cedula,
		Type:     req.Type,
		Frequent: req.Frequent,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: req.IsActive,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update client")
		respondError(w, err)
		return
	}

	h.invalidateCache(r.Context())

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Client updated successfully",
		Data:    client,
	})
}

// DeleteClient handles DELETE /api/clients/{id}
func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid client ID"})
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteClientCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete client")
		respondError(w, err)
		return
	}

	h.invalidateCache(r.Context())

	if h.kafkaPublisher != nil {
		event := kafka.RecordDeletedEvent{
			EntityTable: domain.Client{}.TableName(),
			RecordID:    id,
		}
		if err := h.kafkaPublisher.PublishRecordDeleted(r.Context(), event); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish record deleted event")
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Client deleted successfully",
	})
}

func (h *ClientHandler) invalidateCache(ctx context.Context) {
	if h.cache != nil {
		h.cache.Invalidate(ctx, "/api/clients")
	}
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrClientExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps the error to a status code; unexpected failures get a
// generic message so internals never reach the client
func respondError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	respondJSON(w, status, Response{Success: false, Error: msg})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
