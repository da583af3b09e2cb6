package command

import (
	"fmt"

	"github.com/mundiclass/backend/internal/user/domain"
	"github.com/mundiclass/backend/pkg/auth"
)

// LoginUserCommand represents the command to authenticate a user
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginResult carries the authenticated user and their session token
type LoginResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// LoginUserHandler handles user authentication
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle verifies the credentials and issues a JWT.
// Lookup failures collapse into ErrInvalidCredentials so the response
// never reveals whether the username exists.
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResult, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	user, err := h.repo.FindByUsername(cmd.Username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{User: user, Token: token}, nil
}
