package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a sellable catalog item
type Product struct {
	ID                 uint             `json:"id" gorm:"primaryKey"`
	Name               string           `json:"name" gorm:"not null;index;size:150"`
	Stock              int              `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	UnitPrice          decimal.Decimal  `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	WholesalePrice     *decimal.Decimal `json:"wholesale_price,omitempty" gorm:"type:decimal(10,2)"`
	WholesaleThreshold int              `json:"wholesale_threshold" gorm:"not null;default:20;check:wholesale_threshold >= 0"`
	MinStock           int              `json:"min_stock" gorm:"not null;default:0"`
	CategoryID         *uint            `json:"category_id,omitempty" gorm:"index"`
	IsActive           bool             `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsAvailable checks if the product can be sold
func (p *Product) IsAvailable() bool {
	return p.Stock > 0 && p.IsActive
}

// Quote applies the product's pricing policy to the given quantity
func (p *Product) Quote(quantity int) (PriceQuote, error) {
	return QuotePrice(p.UnitPrice, p.WholesalePrice, p.WholesaleThreshold, quantity)
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindAll(nameContains string, minStock *int, limit, offset int) ([]Product, error)
	FindLowStock(limit, offset int) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
	Count() (int64, error)
}
