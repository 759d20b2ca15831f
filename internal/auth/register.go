package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/halleyx/commerce-backend/internal/cart"
	"github.com/halleyx/commerce-backend/internal/customers"
	"github.com/halleyx/commerce-backend/pkg/config"
	"github.com/halleyx/commerce-backend/pkg/db"
	pkgerrors "github.com/halleyx/commerce-backend/pkg/errors"
	"github.com/halleyx/commerce-backend/pkg/security"
)

// RegisterService handles the signup transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RegisterServiceParams packages the dependencies for the signup flow.
type RegisterServiceParams struct {
	DB             txRunner
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          txRunner
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a signup service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Register creates the customer and their cart in one transaction so no
// account ever exists without a cart.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var resp *RegisterResponse
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		customerRepo := customers.NewRepository(tx)
		cartRepo := cart.NewRepository(tx)

		if _, err := customerRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check customer email")
		}

		customer, err := customerRepo.Create(ctx, customers.CreateCustomerDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
		}

		if _, err := cartRepo.CreateForCustomer(ctx, customer.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
		}

		resp = &RegisterResponse{
			Message:    "Registration successful. Please log in.",
			CustomerID: customer.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
