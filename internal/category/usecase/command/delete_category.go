package command

import (
	"context"
	"fmt"

	"github.com/mundiclass/backend/internal/category/domain"
	"github.com/mundiclass/backend/pkg/logger"
)

// DeletionRecorder appends an entry to the deletion audit log
type DeletionRecorder interface {
	RecordDeletion(ctx context.Context, entityTable string, recordID uint, snapshot interface{}) error
}

// DeleteCategoryCommand represents the command to delete a category
type DeleteCategoryCommand struct {
	ID uint
}

// DeleteCategoryHandler handles category deletion
type DeleteCategoryHandler struct {
	repo     domain.CategoryRepository
	recorder DeletionRecorder
}

// NewDeleteCategoryHandler creates a new delete category handler
func NewDeleteCategoryHandler(repo domain.CategoryRepository, recorder DeletionRecorder) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{repo: repo, recorder: recorder}
}

// Handle deletes the category and records it in the deletion history.
// The audit log lives on its own connection pool, so the append cannot
// roll back the committed delete; a failed append is logged instead.
func (h *DeleteCategoryHandler) Handle(ctx context.Context, cmd DeleteCategoryCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("%w: invalid category id", domain.ErrInvalidInput)
	}

	category, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err := h.recorder.RecordDeletion(ctx, domain.Category{}.TableName(), category.ID, category); err != nil {
		logger.Logger.Error().
			Err(err).
			Uint("category_id", category.ID).
			Msg("Failed to record category deletion")
	}

	return nil
}
