package query

import (
	"fmt"

	"github.com/mundiclass/backend/internal/client/domain"
)

// ListClientsQuery represents the query to list clients
type ListClientsQuery struct {
	Type     string // filter by client type
	Frequent *bool  // filter by frequent flag
	Name     string // name-contains filter
	Limit    int
	Offset   int
}

// ListClientsHandler handles list clients query
type ListClientsHandler struct {
	repo domain.ClientRepository
}

// NewListClientsHandler creates a new list clients handler
func NewListClientsHandler(repo domain.ClientRepository) *ListClientsHandler {
	return &ListClientsHandler{repo: repo}
}

// Handle executes the list clients query
func (h *ListClientsHandler) Handle(q ListClientsQuery) ([]domain.Client, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Type != "" && !domain.ClientType(q.Type).Valid() {
		return nil, fmt.Errorf("%w: client type must be %q or %q", domain.ErrInvalidInput, domain.TypeWholesale, domain.TypeRetail)
	}

	clients, err := h.repo.FindAll(q.Type, q.Frequent, q.Name, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
