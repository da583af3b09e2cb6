//go:build wireinject
// +build wireinject

package client

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/mundiclass/backend/internal/client/delivery/http"
	"github.com/mundiclass/backend/internal/client/domain"
	"github.com/mundiclass/backend/internal/client/repository"
	"github.com/mundiclass/backend/internal/client/usecase/command"
	"github.com/mundiclass/backend/internal/client/usecase/query"
)

// ProvideClientRepository provides the client repository
func ProvideClientRepository(db *gorm.DB) domain.ClientRepository {
	return repository.NewGormClientRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideClientRepository,
)

// InitializeHTTPHandler initializes the client HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, recorder command.DeletionRecorder) (*http.ClientHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreateClientHandler,
		command.NewUpdateClientHandler,
		command.NewDeleteClientHandler,
		query.NewGetClientHandler,
		query.NewListClientsHandler,
		http.NewClientHandler,
	)
	return nil, nil
}
