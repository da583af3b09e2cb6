package command

import (
	"context"
	"fmt"

	"github.com/mundiclass/backend/internal/product/domain"
	"github.com/mundiclass/backend/pkg/logger"
)

// DeletionRecorder appends an entry to the deletion audit log
type DeletionRecorder interface {
	RecordDeletion(ctx context.Context, entityTable string, recordID uint, snapshot interface{}) error
}

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo     domain.ProductRepository
	recorder DeletionRecorder
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, recorder DeletionRecorder) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, recorder: recorder}
}

// Handle deletes the product and records it in the deletion history.
// The audit log lives on its own connection pool, so the append cannot
// roll back the committed delete; a failed append is logged instead.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("%w: invalid product id", domain.ErrInvalidInput)
	}

	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err := h.recorder.RecordDeletion(ctx, domain.Product{}.TableName(), product.ID, product); err != nil {
		logger.Logger.Error().
			Err(err).
			Uint("product_id", product.ID).
			Msg("Failed to record product deletion")
	}

	return nil
}
