package command

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mundiclass/backend/internal/product/domain"
)

// CategoryChecker verifies that a referenced category exists
type CategoryChecker interface {
	CategoryExists(id uint) (bool, error)
}

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name               string
	Stock              int
	UnitPrice          decimal.Decimal
	WholesalePrice     *decimal.Decimal
	WholesaleThreshold *int
	MinStock           int
	CategoryID         *uint
	IsActive           bool
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo       domain.ProductRepository
	categories CategoryChecker
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, categories CategoryChecker) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, categories: categories}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if len(cmd.Name) < 2 {
		return nil, fmt.Errorf("%w: product name must be at least 2 characters", domain.ErrInvalidInput)
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
	}
	if cmd.MinStock < 0 {
		return nil, fmt.Errorf("%w: minimum stock cannot be negative", domain.ErrInvalidInput)
	}
	if !cmd.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: unit price must be positive", domain.ErrInvalidInput)
	}
	if cmd.WholesalePrice != nil && !cmd.WholesalePrice.IsPositive() {
		return nil, fmt.Errorf("%w: wholesale price must be positive", domain.ErrInvalidInput)
	}

	threshold := domain.DefaultWholesaleThreshold
	if cmd.WholesaleThreshold != nil {
		if *cmd.WholesaleThreshold < 0 {
			return nil, fmt.Errorf("%w: wholesale threshold cannot be negative", domain.ErrInvalidInput)
		}
		threshold = *cmd.WholesaleThreshold
	}

	if cmd.CategoryID != nil {
		exists, err := h.categories.CategoryExists(*cmd.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: category %d does not exist", domain.ErrInvalidInput, *cmd.CategoryID)
		}
	}

	product := &domain.Product{
		Name:               cmd.Name,
		Stock:              cmd.Stock,
		UnitPrice:          cmd.UnitPrice,
		WholesalePrice:     cmd.WholesalePrice,
		WholesaleThreshold: threshold,
		MinStock:           cmd.MinStock,
		CategoryID:         cmd.CategoryID,
		IsActive:           cmd.IsActive,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
