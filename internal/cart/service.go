package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/halleyx/commerce-backend/pkg/db/models"
	pkgerrors "github.com/halleyx/commerce-backend/pkg/errors"
)

// AddToCartRequest is the payload for appending product units to the cart.
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// UpdateItemRequest overwrites a line's quantity; zero removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// Service defines the cart surface used by the controllers.
type Service interface {
	GetCart(ctx context.Context, customerID uuid.UUID) (*CartDTO, error)
	AddToCart(ctx context.Context, customerID uuid.UUID, req AddToCartRequest) (*CartDTO, error)
	UpdateItemQuantity(ctx context.Context, customerID, productID uuid.UUID, req UpdateItemRequest) (*CartDTO, error)
	RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*CartDTO, error)
}

type customerChecker interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

// ServiceParams bundles the dependencies required to build a cart service.
type ServiceParams struct {
	CartRepo     *Repository
	CustomerRepo customerChecker
}

type service struct {
	carts     *Repository
	customers customerChecker
}

// NewService constructs a cart service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.CustomerRepo == nil {
		return nil, fmt.Errorf("customer repository is required")
	}
	return &service{
		carts:     params.CartRepo,
		customers: params.CustomerRepo,
	}, nil
}

// GetCart returns the customer's cart, creating an empty one on first access.
func (s *service) GetCart(ctx context.Context, customerID uuid.UUID) (*CartDTO, error) {
	cart, err := s.loadOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return FromModel(cart), nil
}

// AddToCart appends units of a product. Adding a product already in the cart
// accumulates into the existing line instead of creating a second one. The
// product itself is not verified here; a stale or bad product id surfaces
// when the cart is converted to an order.
func (s *service) AddToCart(ctx context.Context, customerID uuid.UUID, req AddToCartRequest) (*CartDTO, error) {
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer")
	}

	cart, err := s.loadOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	existing, err := s.carts.FindItem(ctx, cart.ID, req.ProductID)
	switch {
	case err == nil:
		if err := s.carts.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+req.Quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "accumulate cart item")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.carts.CreateItem(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cart item")
	}

	return s.reload(ctx, cart.ID)
}

// UpdateItemQuantity overwrites a line's quantity; quantity zero removes it.
func (s *service) UpdateItemQuantity(ctx context.Context, customerID, productID uuid.UUID, req UpdateItemRequest) (*CartDTO, error) {
	if req.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if req.Quantity == 0 {
		return s.RemoveItem(ctx, customerID, productID)
	}

	cart, item, err := s.findLine(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.UpdateItemQuantity(ctx, item.ID, req.Quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	return s.reload(ctx, cart.ID)
}

// RemoveItem drops the product's line from the cart.
func (s *service) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*CartDTO, error) {
	cart, item, err := s.findLine(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.DeleteItem(ctx, item.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	return s.reload(ctx, cart.ID)
}

func (s *service) loadOrCreate(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	cart, err := s.carts.FindByCustomer(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	if _, err := s.carts.CreateForCustomer(ctx, customerID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
	}
	cart, err = s.carts.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return cart, nil
}

func (s *service) findLine(ctx context.Context, customerID, productID uuid.UUID) (*models.Cart, *models.CartItem, error) {
	cart, err := s.carts.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart is empty")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	item, err := s.carts.FindItem(ctx, cart.ID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cart item")
	}
	return cart, item, nil
}

func (s *service) reload(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart")
	}
	return FromModel(cart), nil
}
