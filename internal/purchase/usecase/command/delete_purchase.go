package command

import (
	"context"
	"fmt"

	"github.com/mundiclass/backend/internal/purchase/domain"
	"github.com/mundiclass/backend/pkg/logger"
)

// DeletionRecorder appends an entry to the deletion audit log
type DeletionRecorder interface {
	RecordDeletion(ctx context.Context, entityTable string, recordID uint, snapshot interface{}) error
}

// DeletePurchaseCommand represents the command to delete a purchase
type DeletePurchaseCommand struct {
	ID uint
}

// DeletePurchaseHandler handles purchase deletion
type DeletePurchaseHandler struct {
	repo     domain.PurchaseRepository
	recorder DeletionRecorder
}

// NewDeletePurchaseHandler creates a new delete purchase handler
func NewDeletePurchaseHandler(repo domain.PurchaseRepository, recorder DeletionRecorder) *DeletePurchaseHandler {
	return &DeletePurchaseHandler{repo: repo, recorder: recorder}
}

// Handle deletes the purchase and records it in the deletion history.
// Stock is not restored; a deleted purchase is an audit correction, not
// a return. The audit log lives on its own connection pool, so the
// append cannot roll back the committed delete; a failed append is
// logged instead.
func (h *DeletePurchaseHandler) Handle(ctx context.Context, cmd DeletePurchaseCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("%w: invalid purchase id", domain.ErrInvalidInput)
	}

	purchase, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}

	if err := h.recorder.RecordDeletion(ctx, domain.Purchase{}.TableName(), purchase.ID, purchase); err != nil {
		logger.Logger.Error().
			Err(err).
			Uint("purchase_id", purchase.ID).
			Msg("Failed to record purchase deletion")
	}

	return nil
}
