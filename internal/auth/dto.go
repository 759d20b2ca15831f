package auth

import (
	"github.com/google/uuid"
)

// RegisterRequest captures the payload for customer signup.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// RegisterResponse acknowledges signup without issuing a token; the client
// logs in as a second step.
type RegisterResponse struct {
	Message    string    `json:"message"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// LoginRequest captures the credentials sent to either login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
