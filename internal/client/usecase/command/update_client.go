package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/mundiclass/backend/internal/client/domain"
)

// UpdateClientCommand carries a partial update; nil fields are left untouched
type UpdateClientCommand struct {
	ID       uint
	Name     *string
	Cedula   *string
	Type     *domain.ClientType
	Frequent *bool
	Phone    *string
	Address  *string
	IsActive *bool
}

// UpdateClientHandler handles client updates
type UpdateClientHandler struct {
	repo domain.ClientRepository
}

// NewUpdateClientHandler creates a new update client handler
func NewUpdateClientHandler(repo domain.ClientRepository) *UpdateClientHandler {
	return &UpdateClientHandler{repo: repo}
}

// Handle merges the set fields onto the stored client
func (h *UpdateClientHandler) Handle(cmd UpdateClientCommand) (*domain.Client, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("%w: invalid client id", domain.ErrInvalidInput)
	}

	client, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if len(*cmd.Name) < 2 {
			return nil, fmt.Errorf("%w: client name must be at least 2 characters", domain.ErrInvalidInput)
		}
		client.Name = *cmd.Name
	}
	if cmd.Cedula != nil && *cmd.Cedula != client.Cedula {
		if *cmd.Cedula == "" {
			return nil, fmt.Errorf("%w: cedula cannot be empty", domain.ErrInvalidInput)
		}
		existing, err := h.repo.FindByCedula(*cmd.Cedula)
		if err != nil && !errors.Is(err, domain.ErrClientNotFound) {
			return nil, fmt.Errorf("failed to check cedula: %w", err)
		}
		if existing != nil && existing.ID != client.ID {
			return nil, domain.ErrClientExists
		}
		client.Cedula = *cmd.Cedula
	}
	if cmd.Type != nil {
		if !cmd.Type.Valid() {
			return nil, fmt.Errorf("%w: client type must be %q or %q", domain.ErrInvalidInput, domain.TypeWholesale, domain.TypeRetail)
		}
		client.Type = *cmd.Type
	}
	if cmd.Frequent != nil {
		client.Frequent = *cmd.Frequent
	}
	if cmd.Phone != nil {
		client.Phone = *cmd.Phone
	}
	if cmd.Address != nil {
		client.Address = *cmd.Address
	}
	if cmd.IsActive != nil {
		client.IsActive = *cmd.IsActive
	}
	client.UpdatedAt = time.Now()

	if err := h.repo.Update(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}
