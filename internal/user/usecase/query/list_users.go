package query

import (
	"fmt"

	"github.com/mundiclass/backend/internal/user/domain"
)

// ListUsersQuery represents the query to list users
type ListUsersQuery struct {
	Role   string // filter by role
	Limit  int
	Offset int
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(q ListUsersQuery) ([]domain.User, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Role != "" && !domain.Role(q.Role).Valid() {
		return nil, fmt.Errorf("%w: role must be %q or %q", domain.ErrInvalidInput, domain.RoleUser, domain.RoleAdmin)
	}

	users, err := h.repo.FindAll(q.Role, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
