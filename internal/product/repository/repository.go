package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mundiclass/backend/internal/product/domain"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(nameContains string, minStock *int, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	q := r.db.Limit(limit).Offset(offset)
	if nameContains != "" {
		q = q.Where("name ILIKE ?", "%"+nameContains+"%")
	}
	if minStock != nil {
		q = q.Where("stock >= ?", *minStock)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindLowStock(limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("stock <= min_stock").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Product{}, id).Error
}

func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Count(&count).Error
	return count, err
}
