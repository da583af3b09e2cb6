package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	productdomain "github.com/mundiclass/backend/internal/product/domain"
	"github.com/mundiclass/backend/internal/purchase/domain"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GORM purchase repository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// CreateWithStockDecrement inserts the purchase and decrements the product
// stock in a single transaction. The product row is locked with SELECT ...
// FOR UPDATE so concurrent purchases of the same product serialize, and the
// stock check is repeated under the lock. Pricing is computed from the
// locked row so the charged price matches the stock that was reserved.
func (r *GormPurchaseRepository) CreateWithStockDecrement(ctx context.Context, purchase *domain.Purchase) (int, error) {
	var remaining int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product productdomain.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, purchase.ProductID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return productdomain.ErrProductNotFound
			}
			return err
		}

		if product.Stock < purchase.Quantity {
			return domain.ErrInsufficientStock
		}

		quote, err := product.Quote(purchase.Quantity)
		if err != nil {
			return err
		}

		result := tx.Model(&productdomain.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("stock", gorm.Expr("stock - ?", purchase.Quantity))
		if result.Error != nil {
			return result.Error
		}

		purchase.UnitPrice = quote.UnitPrice
		purchase.Total = quote.Total
		if purchase.PurchasedAt.IsZero() {
			purchase.PurchasedAt = time.Now()
		}
		remaining = product.Stock - purchase.Quantity

		return tx.Create(purchase).Error
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// FindByID finds a purchase by ID
func (r *GormPurchaseRepository) FindByID(id uint) (*domain.Purchase, error) {
	var purchase domain.Purchase
	err := r.db.First(&purchase, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll returns purchases matching the filter, newest first
func (r *GormPurchaseRepository) FindAll(f domain.PurchaseFilter) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	q := r.db.Limit(f.Limit).Offset(f.Offset).Order("purchased_at DESC")
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.ProductID != nil {
		q = q.Where("product_id = ?", *f.ProductID)
	}
	if f.From != nil {
		q = q.Where("purchased_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("purchased_at <= ?", *f.To)
	}
	err := q.Find(&purchases).Error
	return purchases, err
}

// Delete removes a purchase
func (r *GormPurchaseRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Purchase{}, id).Error
}

// Count returns the total number of purchases
func (r *GormPurchaseRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Purchase{}).Count(&count).Error
	return count, err
}
