package query

import (
	"fmt"

	"github.com/mundiclass/backend/internal/purchase/domain"
)

// GetPurchaseQuery represents the query to get a purchase by ID
type GetPurchaseQuery struct {
	ID uint
}

// GetPurchaseHandler handles get purchase query
type GetPurchaseHandler struct {
	repo domain.PurchaseRepository
}

// NewGetPurchaseHandler creates a new get purchase handler
func NewGetPurchaseHandler(repo domain.PurchaseRepository) *GetPurchaseHandler {
	return &GetPurchaseHandler{repo: repo}
}

// Handle executes the get purchase query
func (h *GetPurchaseHandler) Handle(q GetPurchaseQuery) (*domain.Purchase, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("%w: invalid purchase id", domain.ErrInvalidInput)
	}
	return h.repo.FindByID(q.ID)
}
