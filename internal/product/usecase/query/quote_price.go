package query

import (
	"github.com/mundiclass/backend/internal/product/domain"
)

// QuotePriceQuery asks what a quantity of a product would cost.
// It never writes; quoting is free of side effects.
type QuotePriceQuery struct {
	ProductID uint
	Quantity  int
}

// QuotePriceResult pairs the quote with the product it was computed for
type QuotePriceResult struct {
	ProductID   uint              `json:"product_id"`
	ProductName string            `json:"product_name"`
	Threshold   int               `json:"wholesale_threshold"`
	Quote       domain.PriceQuote `json:"quote"`
}

// QuotePriceHandler handles price quote queries
type QuotePriceHandler struct {
	repo domain.ProductRepository
}

// NewQuotePriceHandler creates a new quote price handler
func NewQuotePriceHandler(repo domain.ProductRepository) *QuotePriceHandler {
	return &QuotePriceHandler{repo: repo}
}

// Handle executes the price quote query
func (h *QuotePriceHandler) Handle(q QuotePriceQuery) (*QuotePriceResult, error) {
	if q.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := h.repo.FindByID(q.ProductID)
	if err != nil {
		return nil, err
	}

	quote, err := product.Quote(q.Quantity)
	if err != nil {
		return nil, err
	}

	return &QuotePriceResult{
		ProductID:   product.ID,
		ProductName: product.Name,
		Threshold:   product.WholesaleThreshold,
		Quote:       quote,
	}, nil
}
