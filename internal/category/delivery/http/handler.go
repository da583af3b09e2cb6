package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mundiclass/backend/internal/category/domain"
	"github.com/mundiclass/backend/internal/category/usecase/command"
	"github.com/mundiclass/backend/internal/category/usecase/query"
	"github.com/mundiclass/backend/kafka"
	"github.com/mundiclass/backend/pkg/logger"
	"github.com/mundiclass/backend/pkg/middleware"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	createHandler *command.CreateCategoryHandler
	updateHandler *command.UpdateCategoryHandler
	deleteHandler *command.DeleteCategoryHandler

	getHandler  *query.GetCategoryHandler
	listHandler *query.ListCategoriesHandler

	repo           domain.CategoryRepository
	kafkaPublisher *kafka.Publisher
	cache          *middleware.ResponseCache
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(
	createHandler *command.CreateCategoryHandler,
	updateHandler *command.UpdateCategoryHandler,
	deleteHandler *command.DeleteCategoryHandler,
	getHandler *query.GetCategoryHandler,
	listHandler *query.ListCategoriesHandler,
	repo domain.CategoryRepository,
) *CategoryHandler {
	return &CategoryHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		repo:          repo,
	}
}

// SetKafkaPublisher attaches an optional event publisher
func (h *CategoryHandler) SetKafkaPublisher(p *kafka.Publisher) {
	h.kafkaPublisher = p
}

// SetResponseCache attaches an optional read cache
func (h *CategoryHandler) SetResponseCache(c *middleware.ResponseCache) {
	h.cache = c
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/categories", h.cached(h.ListCategories)).Methods("GET")
	router.HandleFunc("/api/categories/{id}", h.cached(h.GetCategory)).Methods("GET")

	router.HandleFunc("/api/categories", middleware.AdminMiddleware(h.CreateCategory)).Methods("POST")
	router.HandleFunc("/api/categories/{id}", middleware.AdminMiddleware(h.UpdateCategory)).Methods("PUT")
	router.HandleFunc("/api/categories/{id}", middleware.AdminMiddleware(h.DeleteCategory)).Methods("DELETE")
}

func (h *CategoryHandler) cached(next http.HandlerFunc) http.HandlerFunc {
	if h.cache == nil {
		return next
	}
	return h.cache.Middleware(next)
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code *string `json:"code"`
		Name string  `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	category, err := h.createHandler.Handle(command.CreateCategoryCommand{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create category")
		respondError(w, err)
		return
	}

	h.invalidateCache(r.Context())

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListCategoriesQuery{
		Name:   r.URL.Query().Get("name"),
		Limit:  limit,
		Offset: offset,
	}

	categories, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list categories")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list categories"})
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"categories": categories,
			"total":      count,
		},
	})
}

// GetCategory handles GET /api/categories/{id}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid category ID"})
		return
	}

	category, err := h.getHandler.Handle(query.GetCategoryQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: category})
}

// UpdateCategory handles PUT /api/categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid category ID"})
		return
	}

	var req struct {
		Code *string `json:"code"`
		Name *string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	category, err := h.updateHandler.Handle(command.UpdateCategoryCommand{
		ID:   id,
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update category")
		respondError(w, err)
		return
	}

	h.invalidateCache(r.Context())

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category updated successfully",
		Data:    category,
	})
}

// DeleteCategory handles DELETE /api/categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid category ID"})
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteCategoryCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete category")
		respondError(w, err)
		return
	}

	h.invalidateCache(r.Context())

	if h.kafkaPublisher != nil {
		event := kafka.RecordDeletedEvent{
			EntityTable: domain.Category{}.TableName(),
			RecordID:    id,
		}
		if err := h.kafkaPublisher.PublishRecordDeleted(r.Context(), event); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish record deleted event")
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category deleted successfully",
	})
}

func (h *CategoryHandler) invalidateCache(ctx context.Context) {
	if h.cache != nil {
		h.cache.Invalidate(ctx, "/api/categories")
	}
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCategoryExists):
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
