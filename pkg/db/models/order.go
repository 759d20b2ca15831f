package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/halleyx/commerce-backend/pkg/enums"
)

// Order records a completed cart-to-purchase conversion. The item list and
// total are immutable once created; only Status is ever updated.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID  uuid.UUID         `gorm:"column:customer_id;type:uuid;not null;index"`
	TotalAmount decimal.Decimal   `gorm:"column:total_amount;type:decimal(12,2);not null"`
	Status      enums.OrderStatus `gorm:"column:status;not null;default:'PENDING'"`
	Customer    *Customer         `gorm:"foreignKey:CustomerID"`
	Items       []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an ID when the database default is unavailable (sqlite).
func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
