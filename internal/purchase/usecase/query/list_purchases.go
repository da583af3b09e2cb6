package query

import (
	"fmt"
	"time"

	"github.com/mundiclass/backend/internal/purchase/domain"
)

// ListPurchasesQuery represents the query to list purchases
type ListPurchasesQuery struct {
	ClientID  *uint
	ProductID *uint
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// ListPurchasesHandler handles list purchases query
type ListPurchasesHandler struct {
	repo domain.PurchaseRepository
}

// NewListPurchasesHandler creates a new list purchases handler
func NewListPurchasesHandler(repo domain.PurchaseRepository) *ListPurchasesHandler {
	return &ListPurchasesHandler{repo: repo}
}

// Handle executes the list purchases query
func (h *ListPurchasesHandler) Handle(q ListPurchasesQuery) ([]domain.Purchase, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return nil, fmt.Errorf("%w: to must not be before from", domain.ErrInvalidInput)
	}

	purchases, err := h.repo.FindAll(domain.PurchaseFilter{
		ClientID:  q.ClientID,
		ProductID: q.ProductID,
		From:      q.From,
		To:        q.To,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}
