package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	clientdomain "github.com/mundiclass/backend/internal/client/domain"
	productdomain "github.com/mundiclass/backend/internal/product/domain"
	"github.com/mundiclass/backend/internal/purchase/domain"
)

// ClientChecker verifies that a purchasing client exists
type ClientChecker interface {
	ClientExists(id uint) (bool, error)
}

// StockReader reports a product's available stock
type StockReader interface {
	ProductStock(id uint) (int, error)
}

// CreatePurchaseCommand represents the command to commit a purchase
type CreatePurchaseCommand struct {
	ClientID  uint
	ProductID uint
	Quantity  int
}

// CreatePurchaseResult carries the committed purchase and the stock left behind
type CreatePurchaseResult struct {
	Purchase       *domain.Purchase `json:"purchase"`
	RemainingStock int              `json:"remaining_stock"`
}

// CreatePurchaseHandler handles purchase creation
type CreatePurchaseHandler struct {
	repo     domain.PurchaseRepository
	clients  ClientChecker
	products StockReader
}

// NewCreatePurchaseHandler creates a new create purchase handler
func NewCreatePurchaseHandler(repo domain.PurchaseRepository, clients ClientChecker, products StockReader) *CreatePurchaseHandler {
	return &CreatePurchaseHandler{repo: repo, clients: clients, products: products}
}

// Handle validates and commits the purchase. Checks run in a fixed order:
// client, then product, then quantity, then stock. The stock check here is
// advisory; the repository repeats it under a row lock, so a concurrent
// purchase that empties the shelf still fails with ErrInsufficientStock.
func (h *CreatePurchaseHandler) Handle(ctx context.Context, cmd CreatePurchaseCommand) (*CreatePurchaseResult, error) {
	exists, err := h.clients.ClientExists(cmd.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check client: %w", err)
	}
	if !exists {
		return nil, clientdomain.ErrClientNotFound
	}

	stock, err := h.products.ProductStock(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Quantity <= 0 {
		return nil, productdomain.ErrInvalidQuantity
	}
	if stock < cmd.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	purchase := &domain.Purchase{
		ClientID:  cmd.ClientID,
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
		Reference: newReference(),
	}

	remaining, err := h.repo.CreateWithStockDecrement(ctx, purchase)
	if err != nil {
		return nil, err
	}

	return &CreatePurchaseResult{Purchase: purchase, RemainingStock: remaining}, nil
}

func newReference() string {
	return "PUR-" + strings.ToUpper(uuid.New().String()[:8])
}
