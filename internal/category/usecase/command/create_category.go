package command

import (
	"fmt"
	"time"

	"github.com/mundiclass/backend/internal/category/domain"
)

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	Code *string
	Name string
}

// CreateCategoryHandler handles category creation
type CreateCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(repo domain.CategoryRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{repo: repo}
}

// Handle executes the create category command
func (h *CreateCategoryHandler) Handle(cmd CreateCategoryCommand) (*domain.Category, error) {
	if len(cmd.Name) < 2 {
		return nil, fmt.Errorf("%w: category name must be at least 2 characters", domain.ErrInvalidInput)
	}

	// Name and code must both be unique
	if existing, _ := h.repo.FindByName(cmd.Name); existing != nil {
		return nil, domain.ErrCategoryExists
	}
	if cmd.Code != nil {
		if existing, _ := h.repo.FindByCode(*cmd.Code); existing != nil {
			return nil, domain.ErrCategoryExists
		}
	}

	category := &domain.Category{
		Code:      cmd.Code,
		Name:      cmd.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}
