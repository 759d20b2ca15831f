package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/halleyx/commerce-backend/pkg/auth"
	"github.com/halleyx/commerce-backend/pkg/config"
	"github.com/halleyx/commerce-backend/pkg/db/models"
	"github.com/halleyx/commerce-backend/pkg/enums"
	pkgerrors "github.com/halleyx/commerce-backend/pkg/errors"
	"github.com/halleyx/commerce-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	blockedAccountMessage     = "your account has been blocked, please contact support"
)

// Service defines the behavior needed by the auth controller and middleware.
type Service interface {
	CustomerLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	AdminLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ResolvePrincipal(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*pkgAuth.Principal, error)
}

type customerFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type adminFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	CustomerRepo customerFinder
	AdminRepo    adminFinder
	JWTConfig    config.JWTConfig
}

type service struct {
	customers customerFinder
	admins    adminFinder
	jwtCfg    config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CustomerRepo == nil {
		return nil, fmt.Errorf("customer repository is required")
	}
	if params.AdminRepo == nil {
		return nil, fmt.Errorf("admin repository is required")
	}
	return &service{
		customers: params.CustomerRepo,
		admins:    params.AdminRepo,
		jwtCfg:    params.JWTConfig,
	}, nil
}

// CustomerLogin authenticates a shopper. The blocked check runs before the
// password check so a blocked account always sees the support message.
func (s *service) CustomerLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	customer, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer")
	}

	if customer.Status == enums.CustomerStatusBlocked {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, blockedAccountMessage)
	}

	valid, err := security.VerifyPassword(req.Password, customer.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		SubjectID: customer.ID,
		Email:     customer.Email,
		Role:      enums.RoleCustomer,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &LoginResponse{Token: token}, nil
}

// AdminLogin authenticates a dashboard operator against the admins table.
func (s *service) AdminLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin")
	}
	if admin.Role != enums.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	valid, err := security.VerifyPassword(req.Password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		SubjectID: admin.ID,
		Email:     admin.Email,
		Role:      enums.RoleAdmin,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &LoginResponse{Token: token}, nil
}

// ResolvePrincipal exchanges verified claims for the live account row. Tokens
// for blocked or deleted accounts resolve to unauthorized regardless of their
// remaining lifetime.
func (s *service) ResolvePrincipal(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*pkgAuth.Principal, error) {
	if claims == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	subjectID, err := claims.SubjectID()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token subject")
	}

	switch claims.Role {
	case enums.RoleCustomer:
		customer, err := s.customers.FindByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve customer")
		}
		if customer.Status == enums.CustomerStatusBlocked {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, blockedAccountMessage)
		}
		return &pkgAuth.Principal{Role: enums.RoleCustomer, Customer: customer}, nil

	case enums.RoleAdmin:
		admin, err := s.admins.FindByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve admin")
		}
		return &pkgAuth.Principal{Role: enums.RoleAdmin, Admin: admin}, nil

	default:
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown role")
	}
}
