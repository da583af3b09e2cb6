package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase represents a committed sale of a product to a client
type Purchase struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ClientID    uint            `json:"client_id" gorm:"not null;index"`
	ProductID   uint            `json:"product_id" gorm:"not null;index"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null"`
	Total       decimal.Decimal `json:"total" gorm:"type:numeric(14,2);not null"`
	Reference   string          `json:"reference" gorm:"uniqueIndex;size:40"`
	PurchasedAt time.Time       `json:"purchased_at" gorm:"index"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

var (
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidInput      = errors.New("invalid input")
)

// PurchaseFilter narrows a purchase listing
type PurchaseFilter struct {
	ClientID  *uint
	ProductID *uint
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// PurchaseRepository defines the interface for purchase data access.
// CreateWithStockDecrement must insert the purchase and decrement the
// product's stock in one transaction, holding a row lock on the product
// so concurrent purchases of the same product serialize. It fills in
// UnitPrice, Total and PurchasedAt from the locked product row and
// returns the stock remaining after the decrement.
type PurchaseRepository interface {
	CreateWithStockDecrement(ctx context.Context, purchase *Purchase) (remainingStock int, err error)
	FindByID(id uint) (*Purchase, error)
	FindAll(f PurchaseFilter) ([]Purchase, error)
	Delete(id uint) error
	Count() (int64, error)
}
