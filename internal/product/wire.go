//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/mundiclass/backend/internal/product/delivery/http"
	"github.com/mundiclass/backend/internal/product/domain"
	"github.com/mundiclass/backend/internal/product/repository"
	"github.com/mundiclass/backend/internal/product/usecase/command"
	"github.com/mundiclass/backend/internal/product/usecase/query"
)

// ProvideProductRepository provides the product repository with tracing
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

// InitializeHTTPHandler initializes the product HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, categories command.CategoryChecker, recorder command.DeletionRecorder) (*http.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreateProductHandler,
		command.NewUpdateProductHandler,
		command.NewDeleteProductHandler,
		query.NewGetProductHandler,
		query.NewListProductsHandler,
		query.NewQuotePriceHandler,
		http.NewProductHandler,
	)
	return nil, nil
}
