package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	clientdomain "github.com/mundiclass/backend/internal/client/domain"
	productdomain "github.com/mundiclass/backend/internal/product/domain"
	"github.com/mundiclass/backend/internal/purchase/domain"
	"github.com/mundiclass/backend/internal/purchase/usecase/command"
	"github.com/mundiclass/backend/internal/purchase/usecase/query"
	"github.com/mundiclass/backend/kafka"
	"github.com/mundiclass/backend/pkg/logger"
	"github.com/mundiclass/backend/pkg/middleware"
)

// PurchaseHandler handles HTTP requests for purchases using CQRS pattern
type PurchaseHandler struct {
	createHandler *command.CreatePurchaseHandler
	deleteHandler *command.DeletePurchaseHandler

	getHandler  *query.GetPurchaseHandler
	listHandler *query.ListPurchasesHandler

	repo           domain.PurchaseRepository
	kafkaPublisher *kafka.Publisher

	purchasesCommitted prometheus.Counter
	purchasesRejected  *prometheus.CounterVec
	purchaseLatency    prometheus.Histogram
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(
	createHandler *command.CreatePurchaseHandler,
	deleteHandler *command.DeletePurchaseHandler,
	getHandler *query.GetPurchaseHandler,
	listHandler *query.ListPurchasesHandler,
	repo domain.PurchaseRepository,
) *PurchaseHandler {
	purchasesCommitted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_committed_total",
			Help: "Total number of committed purchases",
		},
	)

	purchasesRejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_rejected_total",
			Help: "Total number of rejected purchases",
		},
		[]string{"reason"},
	)

	purchaseLatency := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "purchase_commit_duration_seconds",
			Help:    "Duration of the purchase transaction in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	prometheus.MustRegister(purchasesCommitted)
	prometheus.MustRegister(purchasesRejected)
	prometheus.MustRegister(purchaseLatency)

	return &PurchaseHandler{
		createHandler:      createHandler,
		deleteHandler:      deleteHandler,
		getHandler:         getHandler,
		listHandler:        listHandler,
		repo:               repo,
		purchasesCommitted: purchasesCommitted,
		purchasesRejected:  purchasesRejected,
		purchaseLatency:    purchaseLatency,
	}
}

// SetKafkaPublisher attaches an optional event publisher
func (h *PurchaseHandler) SetKafkaPublisher(p *kafka.Publisher) {
	h.kafkaPublisher = p
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers purchase routes
func (h *PurchaseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/purchases", h.CreatePurchase).Methods("POST")
	router.HandleFunc("/api/purchases", h.ListPurchases).Methods("GET")
	router.HandleFunc("/api/purchases/{id}", h.GetPurchase).Methods("GET")
	router.HandleFunc("/api/purchases/{id}", middleware.AdminMiddleware(h.DeletePurchase)).Methods("DELETE")
}

type purchaseRequest struct {
	ClientID  uint `json:"client_id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CreatePurchase handles POST /api/purchases
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	start := time.Now()
	result, err := h.createHandler.Handle(r.Context(), command.CreatePurchaseCommand{
		ClientID:  req.ClientID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	h.purchaseLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		h.purchasesRejected.WithLabelValues(rejectionReason(err)).Inc()
		logger.Logger.Warn().
			Err(err).
			Uint("client_id", req.ClientID).
			Uint("product_id", req.ProductID).
			Int("quantity", req.Quantity).
			Msg("Purchase rejected")
		respondError(w, err)
		return
	}

	h.purchasesCommitted.Inc()

	logger.Logger.Info().
		Uint("purchase_id", result.Purchase.ID).
		Str("reference", result.Purchase.Reference).
		Int("remaining_stock", result.RemainingStock).
		Msg("Purchase committed")

	if h.kafkaPublisher != nil {
		event := kafka.PurchaseCompletedEvent{
			PurchaseID: result.Purchase.ID,
			Reference:  result.Purchase.Reference,
			ClientID:   result.Purchase.ClientID,
			ProductID:  result.Purchase.ProductID,
			Quantity:   result.Purchase.Quantity,
			UnitPrice:  result.Purchase.UnitPrice,
			Total:      result.Purchase.Total,
			Stock:      result.RemainingStock,
		}
		if err := h.kafkaPublisher.PublishPurchaseCompleted(r.Context(), event); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish purchase completed event")
		}
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Purchase completed successfully",
		Data:    result,
	})
}

// ListPurchases handles GET /api/purchases
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListPurchasesQuery{Limit: limit, Offset: offset}

	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid client_id"})
			return
		}
		clientID := uint(id)
		q.ClientID = &clientID
	}
	if raw := r.URL.Query().Get("product_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product_id"})
			return
		}
		productID := uint(id)
		q.ProductID = &productID
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid from timestamp, expected RFC3339"})
			return
		}
		q.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid to timestamp, expected RFC3339"})
			return
		}
		q.To = &to
	}

	purchases, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list purchases")
		respondError(w, err)
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"purchases": purchases,
			"total":     count,
		},
	})
}

// GetPurchase handles GET /api/purchases/{id}
func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid purchase ID"})
		return
	}

	purchase, err := h.getHandler.Handle(query.GetPurchaseQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: purchase})
}

// DeletePurchase handles DELETE /api/purchases/{id}
func (h *PurchaseHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid purchase ID"})
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeletePurchaseCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete purchase")
		respondError(w, err)
		return
	}

	if h.kafkaPublisher != nil {
		event := kafka.RecordDeletedEvent{
			EntityTable: domain.Purchase{}.TableName(),
			RecordID:    id,
		}
		if err := h.kafkaPublisher.PublishRecordDeleted(r.Context(), event); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish record deleted event")
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Purchase deleted successfully",
	})
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, productdomain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, productdomain.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, clientdomain.ErrClientNotFound):
		return "client_not_found"
	default:
		return "other"
	}
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrPurchaseNotFound),
		errors.Is(err, productdomain.ErrProductNotFound),
		errors.Is(err, clientdomain.ErrClientNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		// a conflict with the current inventory state
		return http.StatusConflict
	case errors.Is(err, productdomain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidInput):
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
