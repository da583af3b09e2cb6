package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/mundiclass/backend/internal/client/domain"
)

// CreateClientCommand represents the command to create a new client
type CreateClientCommand struct {
	Name     string
	Cedula   string
	Type     domain.ClientType
	Frequent bool
	Phone    string
	Address  string
}

// CreateClientHandler handles client creation
type CreateClientHandler struct {
	repo domain.ClientRepository
}

// NewCreateClientHandler creates a new create client handler
func NewCreateClientHandler(repo domain.ClientRepository) *CreateClientHandler {
	return &CreateClientHandler{repo: repo}
}

// Handle executes the create client command
func (h *CreateClientHandler) Handle(cmd CreateClientCommand) (*domain.Client, error) {
	if len(cmd.Name) < 2 {
		return nil, fmt.Errorf("%w: client name must be at least 2 characters", domain.ErrInvalidInput)
	}
	if cmd.Cedula == "" {
		return nil, fmt.Errorf("%w: cedula is required", domain.ErrInvalidInput)
	}
	if cmd.Type == "" {
		cmd.Type = domain.TypeRetail
	}
	if !cmd.Type.Valid() {
		return nil, fmt.Errorf("%w: client type must be %q or %q", domain.ErrInvalidInput, domain.TypeWholesale, domain.TypeRetail)
	}

	existing, err := h.repo.FindByCedula(cmd.Cedula)
	if err != nil && !errors.Is(err, domain.ErrClientNotFound) {
		return nil, fmt.Errorf("failed to check cedula: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrClientExists
	}

	client := &domain.Client{
		Name:      cmd.Name,
		Cedula:    cmd.Cedula,
		Type:      cmd.Type,
		Frequent:  cmd.Frequent,
		Phone:     cmd.Phone,
		Address:   cmd.Address,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}
