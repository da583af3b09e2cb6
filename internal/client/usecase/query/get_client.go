package query

import (
	"fmt"

	"github.com/mundiclass/backend/internal/client/domain"
)

// GetClientQuery represents the query to get a client by ID
type GetClientQuery struct {
	ID uint
}

// GetClientHandler handles get client query
type GetClientHandler struct {
	repo domain.ClientRepository
}

// NewGetClientHandler creates a new get client handler
func NewGetClientHandler(repo domain.ClientRepository) *GetClientHandler {
	return &GetClientHandler{repo: repo}
}

// Handle executes the get client query
func (h *GetClientHandler) Handle(q GetClientQuery) (*domain.Client, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("%w: invalid client id", domain.ErrInvalidInput)
	}
	return h.repo.FindByID(q.ID)
}

// GetClientByCedulaQuery looks a client up by national ID number
type GetClientByCedulaQuery struct {
	Cedula string
}

// Handle executes the lookup by cedula
func (h *GetClientHandler) HandleByCedula(q GetClientByCedulaQuery) (*domain.Client, error) {
	if q.Cedula == "" {
		return nil, fmt.Errorf("%w: cedula is required", domain.ErrInvalidInput)
	}
	return h.repo.FindByCedula(q.Cedula)
}
