//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/mundiclass/backend/internal/user/delivery/http"
	"github.com/mundiclass/backend/internal/user/domain"
	"github.com/mundiclass/backend/internal/user/repository"
	"github.com/mundiclass/backend/internal/user/usecase/command"
	"github.com/mundiclass/backend/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

// InitializeHTTPHandler initializes the user HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, recorder command.DeletionRecorder) (*http.UserHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewRegisterUserHandler,
		command.NewLoginUserHandler,
		command.NewUpdateUserHandler,
		command.NewDeleteUserHandler,
		query.NewGetUserHandler,
		query.NewListUsersHandler,
		http.NewUserHandler,
	)
	return nil, nil
}
