package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/halleyx/commerce-backend/pkg/db/models"
)

// CartItemDTO flattens the joined product data into the cart line.
type CartItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  *string         `json:"image_url,omitempty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartDTO is the transport shape for a customer cart.
type CartDTO struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Items      []CartItemDTO   `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// FromModel flattens a loaded cart, pricing each line from the live product.
func FromModel(c *models.Cart) *CartDTO {
	if c == nil {
		return nil
	}
	dto := &CartDTO{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		Items:      make([]CartItemDTO, 0, len(c.Items)),
		Subtotal:   decimal.Zero,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	for i := range c.Items {
		item := &c.Items[i]
		line := CartItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			LineTotal: decimal.Zero,
		}
		if item.Product != nil {
			line.Name = item.Product.Name
			line.Price = item.Product.Price
			line.ImageURL = item.Product.ImageURL
			line.LineTotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		dto.Subtotal = dto.Subtotal.Add(line.LineTotal)
		dto.Items = append(dto.Items, line)
	}
	return dto
}
