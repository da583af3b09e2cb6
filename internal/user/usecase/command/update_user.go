package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mundiclass/backend/internal/user/domain"
	"github.com/mundiclass/backend/pkg/auth"
)

// UpdateUserCommand carries a partial update; nil fields are left untouched
type UpdateUserCommand struct {
	ID       uint
	Email    *string
	Password *string
	FullName *string
	Role     *domain.Role
	IsActive *bool
}

// UpdateUserHandler handles user updates
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle merges the set fields onto the stored user
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrInvalidInput)
	}

	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Email != nil && *cmd.Email != user.Email {
		if !strings.Contains(*cmd.Email, "@") {
			return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
		}
		existing, err := h.repo.FindByEmail(*cmd.Email)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, domain.ErrUserExists
		}
		user.Email = *cmd.Email
	}
	if cmd.Password != nil {
		if len(*cmd.Password) < 8 {
			return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
		}
		hashed, err := auth.HashPassword(*cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}
	if cmd.FullName != nil {
		user.FullName = *cmd.FullName
	}
	if cmd.Role != nil {
		if !cmd.Role.Valid() {
			return nil, fmt.Errorf("%w: role must be %q or %q", domain.ErrInvalidInput, domain.RoleUser, domain.RoleAdmin)
		}
		user.Role = *cmd.Role
	}
	if cmd.IsActive != nil {
		user.IsActive = *cmd.IsActive
	}
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
