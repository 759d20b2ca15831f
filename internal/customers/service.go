package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/halleyx/commerce-backend/pkg/db"
	"github.com/halleyx/commerce-backend/pkg/db/models"
	"github.com/halleyx/commerce-backend/pkg/enums"
	pkgerrors "github.com/halleyx/commerce-backend/pkg/errors"
	"github.com/halleyx/commerce-backend/pkg/pagination"
)

// Service defines the customer management surface used by the controllers.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*CustomerDTO, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.CustomerStatus) (*CustomerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpdateRequest carries the profile fields an update may change.
type UpdateRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
}

// ListResult is one page of customers plus the cursor for the next page.
type ListResult struct {
	Customers  []CustomerDTO `json:"customers"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Customer, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateCustomerDTO) (*models.Customer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.CustomerStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService constructs a customer service with the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer")
	}
	return FromModel(customer), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.List(ctx, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list customers")
	}

	result := &ListResult{Customers: make([]CustomerDTO, 0, len(rows))}
	if len(rows) > limit {
		last := rows[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		rows = rows[:limit]
	}
	for i := range rows {
		result.Customers = append(result.Customers, *FromModel(&rows[i]))
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*CustomerDTO, error) {
	dto := UpdateCustomerDTO{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		if normalized == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		dto.Email = &normalized
	}

	customer, err := s.repo.Update(ctx, id, dto)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		case db.IsUniqueViolation(err, ""):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update customer")
		}
	}
	return FromModel(customer), nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.CustomerStatus) (*CustomerDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update customer status")
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete customer")
	}
	return nil
}
