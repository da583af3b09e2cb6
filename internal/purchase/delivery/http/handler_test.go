package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productdomain "github.com/mundiclass/backend/internal/product/domain"
	"github.com/mundiclass/backend/internal/purchase/domain"
	"github.com/mundiclass/backend/internal/purchase/usecase/command"
	"github.com/mundiclass/backend/internal/purchase/usecase/query"
	"github.com/mundiclass/backend/pkg/auth"
	"github.com/mundiclass/backend/pkg/logger"
)

func init() {
	logger.Init("purchase-handler-test", false)
}

// stubPurchaseRepo sells a single product from memory
type stubPurchaseRepo struct {
	mu        sync.Mutex
	stock     int
	unitPrice decimal.Decimal
	purchases []domain.Purchase
	nextID    uint
	createErr error
}

func (r *stubPurchaseRepo) reset(stock int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stock = stock
	r.unitPrice = decimal.RequireFromString("10.00")
	r.purchases = nil
	r.createErr = nil
}

func (r *stubPurchaseRepo) CreateWithStockDecrement(ctx context.Context, p *domain.Purchase) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return 0, r.createErr
	}
	if r.stock < p.Quantity {
		return 0, domain.ErrInsufficientStock
	}

	quote, err := productdomain.QuotePrice(r.unitPrice, nil, productdomain.DefaultWholesaleThreshold, p.Quantity)
	if err != nil {
		return 0, err
	}

	r.stock -= p.Quantity
	r.nextID++
	p.ID = r.nextID
	p.UnitPrice = quote.UnitPrice
	p.Total = quote.Total
	p.PurchasedAt = time.Now()
	r.purchases = append(r.purchases, *p)

	return r.stock, nil
}

func (r *stubPurchaseRepo) FindByID(id uint) (*domain.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.purchases {
		if r.purchases[i].ID == id {
			p := r.purchases[i]
			return &p, nil
		}
	}
	return nil, domain.ErrPurchaseNotFound
}

func (r *stubPurchaseRepo) FindAll(f domain.PurchaseFilter) ([]domain.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Purchase, len(r.purchases))
	copy(out, r.purchases)
	return out, nil
}

func (r *stubPurchaseRepo) Delete(id uint) error { return nil }

func (r *stubPurchaseRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.purchases)), nil
}

type stubClients struct{}

func (stubClients) ClientExists(id uint) (bool, error) { return true, nil }

type stubStock struct{ repo *stubPurchaseRepo }

func (s stubStock) ProductStock(id uint) (int, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	return s.repo.stock, nil
}

type stubRecorder struct{}

func (stubRecorder) RecordDeletion(ctx context.Context, entityTable string, recordID uint, snapshot interface{}) error {
	return nil
}

// The handler registers prometheus collectors on construction, so the
// test router is built exactly once for the package.
var (
	purchaseTestRepo   = &stubPurchaseRepo{}
	purchaseTestRouter = newPurchaseTestRouter()
)

func newPurchaseTestRouter() *mux.Router {
	repo := purchaseTestRepo
	handler := NewPurchaseHandler(
		command.NewCreatePurchaseHandler(repo, stubClients{}, stubStock{repo: repo}),
		command.NewDeletePurchaseHandler(repo, stubRecorder{}),
		query.NewGetPurchaseHandler(repo),
		query.NewListPurchasesHandler(repo),
		repo,
	)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	purchaseTestRouter.ServeHTTP(rec, req)
	return rec
}

func TestCreatePurchaseNeedsNoToken(t *testing.T) {
	purchaseTestRepo.reset(10)

	rec := doRequest(http.MethodPost, "/api/purchases", `{"client_id":1,"product_id":1,"quantity":2}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestCreatePurchaseInsufficientStockIsConflict(t *testing.T) {
	purchaseTestRepo.reset(3)

	rec := doRequest(http.MethodPost, "/api/purchases", `{"client_id":1,"product_id":1,"quantity":5}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreatePurchaseInvalidQuantityIsBadRequest(t *testing.T) {
	purchaseTestRepo.reset(10)

	rec := doRequest(http.MethodPost, "/api/purchases", `{"client_id":1,"product_id":1,"quantity":0}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePurchaseUnexpectedErrorHidesDetails(t *testing.T) {
	purchaseTestRepo.reset(10)
	purchaseTestRepo.createErr = errors.New("pq: connection refused at 10.0.0.5:5432")

	rec := doRequest(http.MethodPost, "/api/purchases", `{"client_id":1,"product_id":1,"quantity":2}`, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Error)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestGetPurchaseNotFound(t *testing.T) {
	purchaseTestRepo.reset(10)

	rec := doRequest(http.MethodGet, "/api/purchases/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePurchaseRequiresAdminRole(t *testing.T) {
	purchaseTestRepo.reset(10)
	token, err := auth.GenerateToken(2, "clerk", "user")
	require.NoError(t, err)

	rec := doRequest(http.MethodDelete, "/api/purchases/1", "", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
