package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/halleyx/commerce-backend/pkg/db/models"
)

// ProductDTO is the transport shape for catalog listings.
type ProductDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      *string         `json:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateProductDTO holds the data required by the repo to persist a listing.
type CreateProductDTO struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	ImageURL      *string
}

// UpdateProductDTO carries the mutable catalog fields; nil means unchanged.
type UpdateProductDTO struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
	ImageURL      *string
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (c CreateProductDTO) ToModel() *models.Product {
	return &models.Product{
		Name:          c.Name,
		Description:   c.Description,
		Price:         c.Price,
		StockQuantity: c.StockQuantity,
		ImageURL:      c.ImageURL,
	}
}
