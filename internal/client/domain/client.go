package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ClientType classifies a client for pricing purposes
type ClientType string

const (
	TypeWholesale ClientType = "wholesale"
	TypeRetail    ClientType = "retail"
)

// Valid reports whether t is one of the known client types
func (t ClientType) Valid() bool {
	return t == TypeWholesale || t == TypeRetail
}

// Client represents a registered buyer
type Client struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null;index;size:120"`
	Cedula    string         `json:"cedula" gorm:"uniqueIndex;not null;size:20"`
	Type      ClientType     `json:"type" gorm:"not null;size:20;default:'retail'"`
	Frequent  bool           `json:"frequent" gorm:"default:false"`
	Phone     string         `json:"phone" gorm:"size:30"`
	Address   string         `json:"address" gorm:"size:255"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for GORM
func (Client) TableName() string {
	return "clients"
}

var (
	ErrClientNotFound = errors.New("client not found")
	ErrClientExists   = errors.New("client with this cedula already exists")
	ErrInvalidInput   = errors.New("invalid input")
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	Create(client *Client) error
	FindByID(id uint) (*Client, error)
	FindByCedula(cedula string) (*Client, error)
	FindAll(clientType string, frequent *bool, nameContains string, limit, offset int) ([]Client, error)
	Update(client *Client) error
	Delete(id uint) error
	Count() (int64, error)
}
