package auth

import (
	"github.com/google/uuid"

	"github.com/halleyx/commerce-backend/pkg/db/models"
	"github.com/halleyx/commerce-backend/pkg/enums"
)

// Principal is the live identity behind a request. Exactly one of Customer or
// Admin is set; tokens are resolved against the database on every request so
// blocked or deleted accounts lose access immediately.
type Principal struct {
	Role     enums.Role
	Customer *models.Customer
	Admin    *models.Admin
}

func (p *Principal) ID() uuid.UUID {
	if p == nil {
		return uuid.Nil
	}
	if p.Customer != nil {
		return p.Customer.ID
	}
	if p.Admin != nil {
		return p.Admin.ID
	}
	return uuid.Nil
}

func (p *Principal) Email() string {
	if p == nil {
		return ""
	}
	if p.Customer != nil {
		return p.Customer.Email
	}
	if p.Admin != nil {
		return p.Admin.Email
	}
	return ""
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Admin != nil
}
