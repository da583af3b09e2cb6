//go:build wireinject
// +build wireinject

package category

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/mundiclass/backend/internal/category/delivery/http"
	"github.com/mundiclass/backend/internal/category/domain"
	"github.com/mundiclass/backend/internal/category/repository"
	"github.com/mundiclass/backend/internal/category/usecase/command"
	"github.com/mundiclass/backend/internal/category/usecase/query"
)

// ProvideCategoryRepository provides the category repository
func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCategoryRepository,
)

// InitializeHTTPHandler initializes the category HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, recorder command.DeletionRecorder) (*http.CategoryHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreateCategoryHandler,
		command.NewUpdateCategoryHandler,
		command.NewDeleteCategoryHandler,
		query.NewGetCategoryHandler,
		query.NewListCategoriesHandler,
		http.NewCategoryHandler,
	)
	return nil, nil
}
