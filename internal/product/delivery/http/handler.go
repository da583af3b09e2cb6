package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/mundiclass/backend/internal/product/domain"
	"github.com/mundiclass/backend/internal/product/usecase/command"
	"github.com/mundiclass/backend/internal/product/usecase/query"
	"github.com/mundiclass/backend/kafka"
	"github.com/mundiclass/backend/pkg/logger"
	"github.com/mundiclass/backend/pkg/middleware"
)

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	getHandler   *query.GetProductHandler
	listHandler  *query.ListProductsHandler
	quoteHandler *query.QuotePriceHandler

	repo           domain.ProductRepository
	kafkaPublisher *kafka.Publisher
	cache          *middleware.ResponseCache

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	quoteHandler *query.QuotePriceHandler,
	repo domain.ProductRepository,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_requests_total",
			Help: "Total number of product requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "product_request_duration_seconds",
			Help:    "Duration of product requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "product_total",
			Help: "Total number of products in the catalog",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalProducts)

	return &ProductHandler{
		createHandler:  createHandler,
		updateHandler:  updateHandler,
		deleteHandler:  deleteHandler,
		getHandler:     getHandler,
		listHandler:    listHandler,
		quoteHandler:   quoteHandler,
		repo:           repo,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		totalProducts:  totalProducts,
	}
}

// SetKafkaPublisher attaches an optional event publisher
func (h *ProductHandler) SetKafkaPublisher(p *kafka.Publisher) {
	h.kafkaPublisher = p
}

// SetResponseCache attaches an optional read cache
func (h *ProductHandler) SetResponseCache(c *middleware.ResponseCache) {
	h.cache = c
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.cached(h.ListProducts))).Methods("GET")
	router.HandleFunc("/api/products/low-stock", h.metricsMiddleware("/api/products/low-stock", h.ListLowStock)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.cached(h.GetProduct))).Methods("GET")
	router.HandleFunc("/api/products/{id}/price", h.metricsMiddleware("/api/products/{id}/price", h.QuotePrice)).Methods("GET")

	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", middleware.AdminMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", middleware.AdminMiddleware(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", middleware.AdminMiddleware(h.DeleteProduct))).Methods("DELETE")
}

func (h *ProductHandler) cached(next http.HandlerFunc) http.HandlerFunc {
	if h.cache == nil {
		return next
	}
	return h.cache.Middleware(next)
}

type productRequest struct {
	Name               *string          `json:"name"`
	Stock              *int             `json:"stock"`
	UnitPrice          *decimal.Decimal `json:"unit_price"`
	WholesalePrice     *decimal.Decimal `json:"wholesale_price"`
	WholesaleThreshold *int             `json:"wholesale_threshold"`
	MinStock           *int             `json:"min_stock"`
	CategoryID         *uint            `json:"category_id"`
	IsActive           *bool            `json:"is_active"`
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Name == nil || req.UnitPrice == nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "name and unit_price are required"})
		return
	}

	cmd := command.CreateProductCommand{
		Name:               *req.Name,
		UnitPrice:          *req.UnitPrice,
		WholesalePrice:     req.WholesalePrice,
		WholesaleThreshold: req.WholesaleThreshold,
		CategoryID:         req.CategoryID,
		IsActive:           true,
	}
	if req.Stock != nil {
		cmd.Stock = *req.Stock
	}
	if req.MinStock != nil {
		cmd.MinStock = *req.MinStock
	}
	if req.IsActive != nil {
		cmd.IsActive = *req.IsActive
	}

	product, err := h.createHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create product")
		respondError(w, err)
		return
	}

	h.updateProductsMetric()
	h.invalidateCache(r.Context())

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListProductsQuery{
		Name:   r.URL.Query().Get("name"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := r.URL.Query().Get("min_stock"); raw != "" {
		minStock, err := strconv.Atoi(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid min_stock"})
			return
		}
		q.MinStock = &minStock
	}

	products, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": products,
			"total":    count,
		},
	})
}

// ListLowStock handles GET /api/products/low-stock
func (h *ProductHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.listHandler.Handle(query.ListProductsQuery{
		LowStock: true,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list low-stock products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list low-stock products"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// QuotePrice handles GET /api/products/{id}/price?quantity=N
func (h *ProductHandler) QuotePrice(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid quantity"})
		return
	}

	result, err := h.quoteHandler.Handle(query.QuotePriceQuery{ProductID: id, Quantity: quantity})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		ID:                 id,
		Name:               req.Name,
		Stock:              req.Stock,
		UnitPrice:          req.UnitPrice,
		WholesalePrice:     req.WholesalePrice,
		WholesaleThreshold: req.WholesaleThreshold,
		MinStock:           req.MinStock,
		CategoryID:         req.CategoryID,
		IsActive:           req.IsActive,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update product")
		respondError(w, err)
		return
	}

	h.invalidateCache(r.Context())

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete product")
		respondError(w, err)
		return
	}

	h.updateProductsMetric()
	h.invalidateCache(r.Context())

	if h.kafkaPublisher != nil {
		event := kafka.RecordDeletedEvent{
			EntityTable: domain.Product{}.TableName(),
			RecordID:    id,
		}
		if err := h.kafkaPublisher.PublishRecordDeleted(r.Context(), event); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish record deleted event")
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

func (h *ProductHandler) updateProductsMetric() {
	if count, err := h.repo.Count(); err == nil {
		h.totalProducts.Set(float64(count))
	}
}

func (h *ProductHandler) invalidateCache(ctx context.Context) {
	if h.cache != nil {
		h.cache.Invalidate(ctx, "/api/products")
	}
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuantity),
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
