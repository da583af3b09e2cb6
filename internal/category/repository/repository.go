package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mundiclass/backend/internal/category/domain"
)

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{})
}

func (r *GormCategoryRepository) Create(category *domain.Category) error {
	return r.db.Create(category).Error
}

func (r *GormCategoryRepository) FindByID(id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByName(name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByCode(code string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("code = ?", code).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindAll(nameContains string, limit, offset int) ([]domain.Category, error) {
	var categories []domain.Category
	q := r.db.Limit(limit).Offset(offset)
	if nameContains != "" {
		q = q.Where("name ILIKE ?", "%"+nameContains+"%")
	}
	err := q.Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) Update(category *domain.Category) error {
	return r.db.Save(category).Error
}

func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Category{}, id).Error
}

func (r *GormCategoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Category{}).Count(&count).Error
	return count, err
}
