package query

import (
	"fmt"

	"github.com/mundiclass/backend/internal/product/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Name     string // name-contains filter
	MinStock *int   // only products with at least this much stock
	LowStock bool   // only products at or below their minimum stock
	Limit    int
	Offset   int
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(q ListProductsQuery) ([]domain.Product, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	var (
		products []domain.Product
		err      error
	)
	if q.LowStock {
		products, err = h.repo.FindLowStock(q.Limit, q.Offset)
	} else {
		products, err = h.repo.FindAll(q.Name, q.MinStock, q.Limit, q.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
