package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mundiclass/backend/internal/user/domain"
	"github.com/mundiclass/backend/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username string
	Email    string
	Cedula   string
	Password string
	FullName string
	Role     domain.Role
}

// RegisterUserHandler handles user registration
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	if len(cmd.Username) < 3 {
		return nil, fmt.Errorf("%w: username must be at least 3 characters", domain.ErrInvalidInput)
	}
	if !strings.Contains(cmd.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	if cmd.Cedula == "" {
		return nil, fmt.Errorf("%w: cedula is required", domain.ErrInvalidInput)
	}
	if len(cmd.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	if cmd.Role == "" {
		cmd.Role = domain.RoleUser
	}
	if !cmd.Role.Valid() {
		return nil, fmt.Errorf("%w: role must be %q or %q", domain.ErrInvalidInput, domain.RoleUser, domain.RoleAdmin)
	}

	for _, check := range []func() (*domain.User, error){
		func() (*domain.User, error) { return h.repo.FindByUsername(cmd.Username) },
		func() (*domain.User, error) { return h.repo.FindByEmail(cmd.Email) },
		func() (*domain.User, error) { return h.repo.FindByCedula(cmd.Cedula) },
	} {
		existing, err := check()
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check uniqueness: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrUserExists
		}
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:  cmd.Username,
		Email:     cmd.Email,
		Cedula:    cmd.Cedula,
		Password:  hashed,
		FullName:  cmd.FullName,
		Role:      cmd.Role,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
