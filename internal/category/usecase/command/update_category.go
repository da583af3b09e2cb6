package command

import (
	"fmt"
	"time"

	"github.com/mundiclass/backend/internal/category/domain"
)

// UpdateCategoryCommand carries a partial update; nil fields are left untouched
type UpdateCategoryCommand struct {
	ID   uint
	Code *string
	Name *string
}

// UpdateCategoryHandler handles category updates
type UpdateCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewUpdateCategoryHandler creates a new update category handler
func NewUpdateCategoryHandler(repo domain.CategoryRepository) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{repo: repo}
}

// Handle executes the update category command
func (h *UpdateCategoryHandler) Handle(cmd UpdateCategoryCommand) (*domain.Category, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("%w: invalid category id", domain.ErrInvalidInput)
	}

	category, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if len(*cmd.Name) < 2 {
			return nil, fmt.Errorf("%w: category name must be at least 2 characters", domain.ErrInvalidInput)
		}
		if existing, _ := h.repo.FindByName(*cmd.Name); existing != nil && existing.ID != cmd.ID {
			return nil, domain.ErrCategoryExists
		}
		category.Name = *cmd.Name
	}
	if cmd.Code != nil {
		if existing, _ := h.repo.FindByCode(*cmd.Code); existing != nil && existing.ID != cmd.ID {
			return nil, domain.ErrCategoryExists
		}
		category.Code = cmd.Code
	}
	category.UpdatedAt = time.Now()

	if err := h.repo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}
