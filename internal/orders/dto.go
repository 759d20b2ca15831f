package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/halleyx/commerce-backend/pkg/db/models"
	"github.com/halleyx/commerce-backend/pkg/enums"
)

// OrderItemDTO is an order line with name, price, and image resolved from
// the live product row at read time.
type OrderItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  *string         `json:"image_url,omitempty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderCustomerDTO identifies the buyer on admin-facing order views.
type OrderCustomerDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// OrderDTO is the transport shape for an order.
type OrderDTO struct {
	ID          uuid.UUID         `json:"id"`
	CustomerID  uuid.UUID         `json:"customer_id"`
	Customer    *OrderCustomerDTO `json:"customer,omitempty"`
	Status      enums.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Items       []OrderItemDTO    `json:"items"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// FromModel flattens a loaded order. Lines whose product has since been
// deleted keep their quantity but render with an empty name and zero price.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		Customer:    customerSummary(o.Customer),
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		Items:       make([]OrderItemDTO, 0, len(o.Items)),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for i := range o.Items {
		item := &o.Items[i]
		line := OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     decimal.Zero,
			LineTotal: decimal.Zero,
		}
		if item.Product != nil {
			line.Name = item.Product.Name
			line.Price = item.Product.Price
			line.ImageURL = item.Product.ImageURL
			line.LineTotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		dto.Items = append(dto.Items, line)
	}
	return dto
}

func customerSummary(c *models.Customer) *OrderCustomerDTO {
	if c == nil {
		return nil
	}
	return &OrderCustomerDTO{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	}
}
