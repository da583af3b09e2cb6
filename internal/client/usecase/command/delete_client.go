package command

import (
	"context"
	"fmt"

	"github.com/mundiclass/backend/internal/client/domain"
	"github.com/mundiclass/backend/pkg/logger"
)

// DeletionRecorder appends an entry to the deletion audit log
type DeletionRecorder interface {
	RecordDeletion(ctx context.Context, entityTable string, recordID uint, snapshot interface{}) error
}

// DeleteClientCommand represents the command to delete a client
type DeleteClientCommand struct {
	ID uint
}

// DeleteClientHandler handles client deletion
type DeleteClientHandler struct {
	repo     domain.ClientRepository
	recorder DeletionRecorder
}

// NewDeleteClientHandler creates a new delete client handler
func NewDeleteClientHandler(repo domain.ClientRepository, recorder DeletionRecorder) *DeleteClientHandler {
	return &DeleteClientHandler{repo: repo, recorder: recorder}
}

// Handle deletes the client and records it in the deletion history.
// The audit log lives on its own connection pool, so the append cannot
// roll back the committed delete; a failed append is logged instead.
func (h *DeleteClientHandler) Handle(ctx context.Context, cmd DeleteClientCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("%w: invalid client id", domain.ErrInvalidInput)
	}

	client, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if err := h.recorder.RecordDeletion(ctx, domain.Client{}.TableName(), client.ID, client); err != nil {
		logger.Logger.Error().
			Err(err).
			Uint("client_id", client.ID).
			Msg("Failed to record client deletion")
	}

	return nil
}
