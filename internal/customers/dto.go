package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/halleyx/commerce-backend/pkg/db/models"
	"github.com/halleyx/commerce-backend/pkg/enums"
)

// CustomerDTO is the transport shape that omits the credential hash.
type CustomerDTO struct {
	ID        uuid.UUID            `json:"id"`
	Email     string               `json:"email"`
	FirstName string               `json:"first_name"`
	LastName  string               `json:"last_name"`
	Role      enums.Role           `json:"role"`
	Status    enums.CustomerStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// CreateCustomerDTO holds the data required by the repo to persist a new customer.
type CreateCustomerDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// UpdateCustomerDTO carries the mutable profile fields; nil means unchanged.
type UpdateCustomerDTO struct {
	Email     *string
	FirstName *string
	LastName  *string
}

func FromModel(c *models.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	return &CustomerDTO{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Role:      c.Role,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (c CreateCustomerDTO) ToModel() *models.Customer {
	return &models.Customer{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Role:         enums.RoleCustomer,
		Status:       enums.CustomerStatusActive,
	}
}
