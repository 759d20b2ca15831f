package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/halleyx/commerce-backend/pkg/enums"
)

// Customer represents the shopper identity. Admins live in their own table.
type Customer struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string               `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string               `gorm:"column:password_hash;not null"`
	FirstName    string               `gorm:"column:first_name;not null"`
	LastName     string               `gorm:"column:last_name;not null"`
	Role         enums.Role           `gorm:"column:role;not null;default:'CUSTOMER'"`
	Status       enums.CustomerStatus `gorm:"column:status;not null;default:'ACTIVE'"`
	Cart         *Cart                `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an ID when the database default is unavailable (sqlite).
func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
