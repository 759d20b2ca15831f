package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/halleyx/commerce-backend/internal/cart"
	"github.com/halleyx/commerce-backend/internal/products"
	"github.com/halleyx/commerce-backend/pkg/db/models"
	"github.com/halleyx/commerce-backend/pkg/enums"
	pkgerrors "github.com/halleyx/commerce-backend/pkg/errors"
	"github.com/halleyx/commerce-backend/pkg/pagination"
)

// Service defines the order surface used by the controllers.
type Service interface {
	CreateFromCart(ctx context.Context, customerID uuid.UUID) (*OrderDTO, error)
	GetForCustomer(ctx context.Context, customerID, orderID uuid.UUID) (*OrderDTO, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*ListResult, error)
	ListAll(ctx context.Context, params pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderDTO, error)
}

// ListResult is one page of orders plus the cursor for the next page.
type ListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// StockShortfall reports the line that blocked checkout.
type StockShortfall struct {
	ProductID uuid.UUID `json:"product_id"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the dependencies required to build an order service.
type ServiceParams struct {
	DB        txRunner
	OrderRepo *Repository
}

type service struct {
	db     txRunner
	orders *Repository
}

// NewService constructs an order service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	return &service{db: params.DB, orders: params.OrderRepo}, nil
}

// CreateFromCart converts the customer's cart into a PENDING order. Stock is
// decremented per line with a guarded update inside one transaction, so a
// shortfall on any line rolls back the whole checkout and leaves the cart
// untouched.
func (s *service) CreateFromCart(ctx context.Context, customerID uuid.UUID) (*OrderDTO, error) {
	var orderID uuid.UUID
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := cart.NewRepository(tx)
		productRepo := products.NewRepository(tx)
		orderRepo := NewRepository(tx)

		loaded, err := cartRepo.FindByCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeBusinessRule, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if len(loaded.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeBusinessRule, "cart is empty")
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(loaded.Items))
		for i := range loaded.Items {
			line := &loaded.Items[i]
			product, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
			}

			if err := productRepo.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				if errors.Is(err, products.ErrInsufficientStock) {
					return pkgerrors.New(pkgerrors.CodeBusinessRule, "insufficient stock").
						WithDetails(StockShortfall{
							ProductID: product.ID,
							Requested: line.Quantity,
							Available: product.StockQuantity,
						})
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}

		order := &models.Order{
			CustomerID:  customerID,
			TotalAmount: total,
			Status:      enums.OrderStatusPending,
			Items:       items,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		orderID = order.ID

		if err := cartRepo.DeleteItemsByCart(ctx, loaded.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, orderID)
}

// GetForCustomer returns the order only when it belongs to the customer.
// Someone else's order reads as not found rather than forbidden.
func (s *service) GetForCustomer(ctx context.Context, customerID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return FromModel(order), nil
}

// GetByID returns an order without ownership scoping, for admin reads.
func (s *service) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*ListResult, error) {
	return s.list(ctx, params, func(cursor *pagination.Cursor, limit int) ([]models.Order, error) {
		return s.orders.ListByCustomer(ctx, customerID, cursor, limit)
	})
}

func (s *service) ListAll(ctx context.Context, params pagination.Params) (*ListResult, error) {
	return s.list(ctx, params, func(cursor *pagination.Cursor, limit int) ([]models.Order, error) {
		return s.orders.ListAll(ctx, cursor, limit)
	})
}

// UpdateStatus sets any valid status; transitions are unrestricted, including
// moving backwards or out of CANCELLED.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderDTO, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
	}
	if err := s.orders.UpdateStatus(ctx, orderID, parsed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	return s.GetByID(ctx, orderID)
}

func (s *service) load(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup order")
	}
	return order, nil
}

func (s *service) list(ctx context.Context, params pagination.Params, fetch func(*pagination.Cursor, int) ([]models.Order, error)) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := fetch(cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	result := &ListResult{Orders: make([]OrderDTO, 0, len(rows))}
	if len(rows) > limit {
		last := rows[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		rows = rows[:limit]
	}
	for i := range rows {
		result.Orders = append(result.Orders, *FromModel(&rows[i]))
	}
	return result, nil
}
