package command

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientdomain "github.com/mundiclass/backend/internal/client/domain"
	productdomain "github.com/mundiclass/backend/internal/product/domain"
	"github.com/mundiclass/backend/internal/purchase/domain"
)

// fakeProduct is the single product the fake repository sells
type fakeProduct struct {
	stock          int
	unitPrice      decimal.Decimal
	wholesalePrice *decimal.Decimal
	threshold      int
}

// fakePurchaseRepo serializes purchases with a mutex, the in-memory stand-in
// for the row lock the real repository takes
type fakePurchaseRepo struct {
	mu        sync.Mutex
	product   fakeProduct
	purchases []domain.Purchase
	nextID    uint
	createErr error
}

func (r *fakePurchaseRepo) CreateWithStockDecrement(ctx context.Context, p *domain.Purchase) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return 0, r.createErr
	}
	if r.product.stock < p.Quantity {
		return 0, domain.ErrInsufficientStock
	}

	quote, err := productdomain.QuotePrice(r.product.unitPrice, r.product.wholesalePrice, r.product.threshold, p.Quantity)
	if err != nil {
		return 0, err
	}

	r.product.stock -= p.Quantity
	r.nextID++
	p.ID = r.nextID
	p.UnitPrice = quote.UnitPrice
	p.Total = quote.Total
	p.PurchasedAt = time.Now()
	r.purchases = append(r.purchases, *p)

	return r.product.stock, nil
}

func (r *fakePurchaseRepo) FindByID(id uint) (*domain.Purchase, error) {
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

func (r *fakePurchaseRepo) FindAll(f domain.PurchaseFilter) ([]domain.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Purchase, len(r.purchases))
	copy(out, r.purchases)
	return out, nil
}

func (r *fakePurchaseRepo) Delete(id uint) error { return nil }

func (r *fakePurchaseRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.purchases)), nil
}

type fakeClientChecker struct {
	exists bool
	called atomic.Bool
}

func (c *fakeClientChecker) ClientExists(id uint) (bool, error) {
	c.called.Store(true)
	return c.exists, nil
}

type fakeStockReader struct {
	stock    int
	notFound bool
	called   atomic.Bool
}

func (s *fakeStockReader) ProductStock(id uint) (int, error) {
	s.called.Store(true)
	if s.notFound {
		return 0, productdomain.ErrProductNotFound
	}
	return s.stock, nil
}

func newTestHandler(repo *fakePurchaseRepo, clients *fakeClientChecker, products *fakeStockReader) *CreatePurchaseHandler {
	return NewCreatePurchaseHandler(repo, clients, products)
}

func TestCreatePurchaseRejectsUnknownClient(t *testing.T) {
	repo := &fakePurchaseRepo{product: fakeProduct{stock: 10, unitPrice: decimal.NewFromInt(10), threshold: 20}}
	clients := &fakeClientChecker{exists: false}
	products := &fakeStockReader{stock: 10}
	handler := newTestHandler(repo, clients, products)

	_, err := handler.Handle(context.Background(), CreatePurchaseCommand{ClientID: 99, ProductID: 1, Quantity: 2})

	assert.ErrorIs(t, err, clientdomain.ErrClientNotFound)
	assert.False(t, products.called.Load(), "product check must not run when the client is unknown")
	assert.Equal(t, 10, repo.product.stock, "stock must be untouched")
}

func TestCreatePurchaseRejectsUnknownProduct(t *testing.T) {
	repo := &fakePurchaseRepo{product: fakeProduct{stock: 10, unitPrice: decimal.NewFromInt(10), threshold: 20}}
	clients := &fakeClientChecker{exists: true}
	products := &fakeStockReader{notFound: true}
	handler := newTestHandler(repo, clients, products)

	_, err := handler.Handle(context.Background(), CreatePurchaseCommand{ClientID: 1, ProductID: 99, Quantity: 2})

	assert.ErrorIs(t, err, productdomain.ErrProductNotFound)
	assert.True(t, clients.called.Load())
	assert.Equal(t, 10, repo.product.stock)
}

func TestCreatePurchaseRejectsNonPositiveQuantity(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		repo := &fakePurchaseRepo{product: fakeProduct{stock: 10, unitPrice: decimal.NewFromInt(10), threshold: 20}}
		handler := newTestHandler(repo, &fakeClientChecker{exists: true}, &fakeStockReader{stock: 10})

		_, err := handler.Handle(context.Background(), CreatePurchaseCommand{ClientID: 1, ProductID: 1, Quantity: quantity})

		assert.ErrorIs(t, err, productdomain.ErrInvalidQuantity, "quantity %d", quantity)
		assert.Equal(t, 10, repo.product.stock)
		assert.Empty(t, repo.purchases)
	}
}

func TestCreatePurchaseRejectsInsufficientStock(t *testing.T) {
	repo := &fakePurchaseRepo{product: fakeProduct{stock: 5, unitPrice: decimal.NewFromInt(10), threshold: 20}}
	handler := newTestHandler(repo, &fakeClientChecker{exists: true}, &fakeStockReader{stock: 5})

	_, err := handler.Handle(context.Background(), CreatePurchaseCommand{ClientID: 1, ProductID: 1, Quantity: 6})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, repo.product.stock)
	assert.Empty(t, repo.purchases)
}

func TestCreatePurchaseCommits(t *testing.T) {
	price := decimal.RequireFromString("10.00")
	wholesale := decimal.RequireFromString("8.00")
	repo := &fakePurchaseRepo{product: fakeProduct{
		stock:          30,
		unitPrice:      price,
		wholesalePrice: &wholesale,
		threshold:      20,
	}}
	handler := newTestHandler(repo, &fakeClientChecker{exists: true}, &fakeStockReader{stock: 30})

	result, err := handler.Handle(context.Background(), CreatePurchaseCommand{ClientID: 1, ProductID: 1, Quantity: 25})
	require.NoError(t, err)

	assert.Equal(t, 5, result.RemainingStock)
	assert.Equal(t, 5, repo.product.stock)
	assert.True(t, result.Purchase.UnitPrice.Equal(wholesale), "wholesale price must apply above the threshold")
	assert.True(t, result.Purchase.Total.Equal(decimal.RequireFromString("200.00")))
	assert.NotEmpty(t, result.Purchase.Reference)
	require.Len(t, repo.purchases, 1)
}

func TestCreatePurchaseDrainsStockExactly(t *testing.T) {
	repo := &fakePurchaseRepo{product: fakeProduct{stock: 5, unitPrice: decimal.NewFromInt(10), threshold: 20}}
	handler := newTestHandler(repo, &fakeClientChecker{exists: true}, &fakeStockReader{stock: 5})

	result, err := handler.Handle(context.Background(), CreatePurchaseCommand{ClientID: 1, ProductID: 1, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, result.RemainingStock)

	// shelf is empty now; the next purchase must fail inside the repository
	// even though the advisory read may still report old stock
	_, err = handler.Handle(context.Background(), CreatePurchaseCommand{ClientID: 1, ProductID: 1, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, repo.product.stock, "stock never goes negative")
}

func TestCreatePurchaseConcurrentBuyersSerialize(t *testing.T) {
	repo := &fakePurchaseRepo{product: fakeProduct{stock: 10, unitPrice: decimal.NewFromInt(10), threshold: 20}}
	// advisory reader reports the initial stock to everyone, so both buyers
	// pass validation and the repository has to arbitrate
	handler := newTestHandler(repo, &fakeClientChecker{exists: true}, &fakeStockReader{stock: 10})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = handler.Handle(context.Background(), CreatePurchaseCommand{ClientID: 1, ProductID: 1, Quantity: 6})
		}(i)
	}
	wg.Wait()

	var committed, rejected int
	for _, err := range errs {
		if err == nil {
			committed++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			rejected++
		}
	}

	assert.Equal(t, 1, committed, "exactly one of the two buyers wins")
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 4, repo.product.stock)
}
