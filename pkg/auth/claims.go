package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/halleyx/commerce-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting the bearer
// token: subject id, email and role, per the dashboard's auth contract.
type AccessTokenPayload struct {
	SubjectID uuid.UUID
	Email     string
	Role      enums.Role
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	Email string     `json:"email"`
	Role  enums.Role `json:"role"`
	jwt.RegisteredClaims
}

// SubjectID parses the registered subject back into a UUID.
func (c *AccessTokenClaims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
