package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mundiclass/backend/internal/user/domain"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*domain.User, error) {
	return r.findOne("username = ?", username)
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*domain.User, error) {
	return r.findOne("email = ?", email)
}

// FindByCedula finds a user by national ID number
func (r *GormUserRepository) FindByCedula(cedula string) (*domain.User, error) {
	return r.findOne("cedula = ?", cedula)
}

func (r *GormUserRepository) findOne(cond string, arg interface{}) (*domain.User, error) {
	var user domain.User
	err := r.db.Where(cond, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAll returns users, optionally filtered by role
func (r *GormUserRepository) FindAll(role string, limit, offset int) ([]domain.User, error) {
	var users []domain.User
	q := r.db.Limit(limit).Offset(offset).Order("username ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Find(&users).Error
	return users, err
}

// Update updates a user
func (r *GormUserRepository) Update(user *domain.User) error {
	return r.db.Save(user).Error
}

// Delete soft-deletes a user
func (r *GormUserRepository) Delete(id uint) error {
	return r.db.Delete(&domain.User{}, id).Error
}

// Count returns the total number of users
func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Count(&count).Error
	return count, err
}
