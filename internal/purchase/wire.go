//go:build wireinject
// +build wireinject

package purchase

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/mundiclass/backend/internal/purchase/delivery/http"
	"github.com/mundiclass/backend/internal/purchase/domain"
	"github.com/mundiclass/backend/internal/purchase/repository"
	"github.com/mundiclass/backend/internal/purchase/usecase/command"
	"github.com/mundiclass/backend/internal/purchase/usecase/query"
)

// ProvidePurchaseRepository provides the purchase repository
func ProvidePurchaseRepository(db *gorm.DB) domain.PurchaseRepository {
	return repository.NewGormPurchaseRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvidePurchaseRepository,
)

// InitializeHTTPHandler initializes the purchase HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, clients command.ClientChecker, products command.StockReader, recorder command.DeletionRecorder) (*http.PurchaseHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreatePurchaseHandler,
		command.NewDeletePurchaseHandler,
		query.NewGetPurchaseHandler,
		query.NewListPurchasesHandler,
		http.NewPurchaseHandler,
	)
	return nil, nil
}
