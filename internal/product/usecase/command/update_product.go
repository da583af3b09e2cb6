package command

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mundiclass/backend/internal/product/domain"
)

// UpdateProductCommand carries a partial update; nil fields are left untouched
type UpdateProductCommand struct {
	ID                 uint
	Name               *string
	Stock              *int
	UnitPrice          *decimal.Decimal
	WholesalePrice     *decimal.Decimal
	ClearWholesale     bool // removes the wholesale price
	WholesaleThreshold *int
	MinStock           *int
	CategoryID         *uint
	IsActive           *bool
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo       domain.ProductRepository
	categories CategoryChecker
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, categories CategoryChecker) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, categories: categories}
}

// Handle merges the set fields onto the stored product
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrInvalidInput)
	}

	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if len(*cmd.Name) < 2 {
			return nil, fmt.Errorf("%w: product name must be at least 2 characters", domain.ErrInvalidInput)
		}
		product.Name = *cmd.Name
	}
	if cmd.Stock != nil {
		if *cmd.Stock < 0 {
			return nil, fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
		}
		product.Stock = *cmd.Stock
	}
	if cmd.UnitPrice != nil {
		if !cmd.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: unit price must be positive", domain.ErrInvalidInput)
		}
		product.UnitPrice = *cmd.UnitPrice
	}
	if cmd.ClearWholesale {
		product.WholesalePrice = nil
	} else if cmd.WholesalePrice != nil {
		if !cmd.WholesalePrice.IsPositive() {
			return nil, fmt.Errorf("%w: wholesale price must be positive", domain.ErrInvalidInput)
		}
		product.WholesalePrice = cmd.WholesalePrice
	}
	if cmd.WholesaleThreshold != nil {
		if *cmd.WholesaleThreshold < 0 {
			return nil, fmt.Errorf("%w: wholesale threshold cannot be negative", domain.ErrInvalidInput)
		}
		product.WholesaleThreshold = *cmd.WholesaleThreshold
	}
	if cmd.MinStock != nil {
		if *cmd.MinStock < 0 {
			return nil, fmt.Errorf("%w: minimum stock cannot be negative", domain.ErrInvalidInput)
		}
		product.MinStock = *cmd.MinStock
	}
	if cmd.CategoryID != nil {
		exists, err := h.categories.CategoryExists(*cmd.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: category %d does not exist", domain.ErrInvalidInput, *cmd.CategoryID)
		}
		product.CategoryID = cmd.CategoryID
	}
	if cmd.IsActive != nil {
		product.IsActive = *cmd.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
