package command

import (
	"context"
	"fmt"

	"github.com/mundiclass/backend/internal/user/domain"
	"github.com/mundiclass/backend/pkg/logger"
)

// DeletionRecorder appends an entry to the deletion audit log
type DeletionRecorder interface {
	RecordDeletion(ctx context.Context, entityTable string, recordID uint, snapshot interface{}) error
}

// DeleteUserCommand represents the command to delete a user
type DeleteUserCommand struct {
	ID uint
}

// DeleteUserHandler handles user deletion
type DeleteUserHandler struct {
	repo     domain.UserRepository
	recorder DeletionRecorder
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository, recorder DeletionRecorder) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo, recorder: recorder}
}

// Handle deletes the user and records it in the deletion history.
// The snapshot keeps the bcrypt hash out of the audit payload. The
// audit log lives on its own connection pool, so the append cannot
// roll back the committed delete; a failed append is logged instead.
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUserCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("%w: invalid user id", domain.ErrInvalidInput)
	}

	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	user.Password = ""
	if err := h.recorder.RecordDeletion(ctx, domain.User{}.TableName(), user.ID, user); err != nil {
		logger.Logger.Error().
			Err(err).
			Uint("user_id", user.ID).
			Msg("Failed to record user deletion")
	}

	return nil
}
