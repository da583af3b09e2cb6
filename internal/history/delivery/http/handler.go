package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mundiclass/backend/internal/history/domain"
	"github.com/mundiclass/backend/internal/history/usecase/query"
	"github.com/mundiclass/backend/pkg/logger"
)

// HistoryHandler serves the deletion audit log
type HistoryHandler struct {
	listHandler *query.ListDeletedHandler
	repo        domain.HistoryRepository
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(listHandler *query.ListDeletedHandler, repo domain.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{
		listHandler: listHandler,
		repo:        repo,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers history routes
func (h *HistoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/history/deleted", h.ListDeleted).Methods("GET")
	router.HandleFunc("/api/history/deleted/{entity}", h.ListDeletedForEntity).Methods("GET")
}

// ListDeleted handles GET /api/history/deleted
func (h *HistoryHandler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.URL.Query().Get("entity"))
}

// ListDeletedForEntity handles GET /api/history/deleted/{entity}
func (h *HistoryHandler) ListDeletedForEntity(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, mux.Vars(r)["entity"])
}

func (h *HistoryHandler) list(w http.ResponseWriter, r *http.Request, entity string) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListDeletedQuery{
		EntityTable: entity,
		Limit:       limit,
		Offset:      offset,
	}

	records, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list deletion history")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list deletion history",
		})
		return
	}

	count, _ := h.repo.Count(r.Context(), entity)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"records": records,
			"total":   count,
		},
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
