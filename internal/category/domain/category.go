package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Category groups products for the catalog
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Code      *string        `json:"code,omitempty" gorm:"uniqueIndex;size:30"`
	Name      string         `json:"name" gorm:"not null;index;size:120"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrInvalidInput     = errors.New("invalid input")
)

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(category *Category) error
	FindByID(id uint) (*Category, error)
	FindByName(name string) (*Category, error)
	FindByCode(code string) (*Category, error)
	FindAll(nameContains string, limit, offset int) ([]Category, error)
	Update(category *Category) error
	Delete(id uint) error
	Count() (int64, error)
}
