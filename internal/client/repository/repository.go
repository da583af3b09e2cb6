package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mundiclass/backend/internal/client/domain"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GORM client repository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Create creates a new client
func (r *GormClientRepository) Create(client *domain.Client) error {
	return r.db.Create(client).Error
}

// FindByID finds a client by ID
func (r *GormClientRepository) FindByID(id uint) (*domain.Client, error) {
	var client domain.Client
	err := r.db.First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindByCedula finds a client by national ID number
func (r *GormClientRepository) FindByCedula(cedula string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.Where("cedula = ?", cedula).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAll returns clients matching the optional filters
func (r *GormClientRepository) FindAll(clientType string, frequent *bool, nameContains string, limit, offset int) ([]domain.Client, error) {
	var clients []domain.Client
	q := r.db.Limit(limit).Offset(offset).Order("name ASC")
	if clientType != "" {
		q = q.Where("type = ?", clientType)
	}
	if frequent != nil {
		q = q.Where("frequent = ?", *frequent)
	}
	if nameContains != "" {
		q = q.Where("name ILIKE ?", "%"+nameContains+"%")
	}
	err := q.Find(&clients).Error
	return clients, err
}

// Update updates a client
func (r *GormClientRepository) Update(client *domain.Client) error {
	return r.db.Save(client).Error
}

// Delete soft-deletes a client
func (r *GormClientRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Client{}, id).Error
}

// Count returns the total number of clients
func (r *GormClientRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Client{}).Count(&count).Error
	return count, err
}
