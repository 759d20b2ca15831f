package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/halleyx/commerce-backend/internal/customers"
	"github.com/halleyx/commerce-backend/internal/products"
	"github.com/halleyx/commerce-backend/pkg/db/models"
	pkgerrors "github.com/halleyx/commerce-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

type cartFixture struct {
	svc      Service
	customer *models.Customer
	product  *models.Product
}

func newFixture(t *testing.T, conn *gorm.DB) cartFixture {
	t.Helper()

	customerRepo := customers.NewRepository(conn)
	productRepo := products.NewRepository(conn)

	customer, err := customerRepo.Create(context.Background(), customers.CreateCustomerDTO{
		Email:        "shopper@example.com",
		PasswordHash: "x",
		FirstName:    "Sam",
		LastName:     "Shopper",
	})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	product, err := productRepo.Create(context.Background(), products.CreateProductDTO{
		Name:          "Wireless Mouse",
		Price:         decimal.RequireFromString("25.00"),
		StockQuantity: 10,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	svc, err := NewService(ServiceParams{
		CartRepo:     NewRepository(conn),
		CustomerRepo: customerRepo,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return cartFixture{svc: svc, customer: customer, product: product}
}

func TestGetCartCreatesOnFirstAccess(t *testing.T) {
	fx := newFixture(t, newTestDB(t))

	first, err := fx.svc.GetCart(context.Background(), fx.customer.ID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if first.CustomerID != fx.customer.ID {
		t.Fatalf("cart bound to wrong customer: %s", first.CustomerID)
	}
	if len(first.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(first.Items))
	}

	second, err := fx.svc.GetCart(context.Background(), fx.customer.ID)
	if err != nil {
		t.Fatalf("get cart again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same cart on second access, got %s and %s", first.ID, second.ID)
	}
}

func TestAddToCartAccumulatesExistingLine(t *testing.T) {
	fx := newFixture(t, newTestDB(t))

	if _, err := fx.svc.AddToCart(context.Background(), fx.customer.ID, AddToCartRequest{
		ProductID: fx.product.ID,
		Quantity:  3,
	}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := fx.svc.AddToCart(context.Background(), fx.customer.ID, AddToCartRequest{
		ProductID: fx.product.ID,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected a single accumulated line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
	if !cart.Subtotal.Equal(decimal.RequireFromString("125.00")) {
		t.Fatalf("unexpected subtotal %s", cart.Subtotal)
	}
}

func TestAddToCartUnknownCustomer(t *testing.T) {
	fx := newFixture(t, newTestDB(t))

	_, err := fx.svc.AddToCart(context.Background(), uuid.New(), AddToCartRequest{
		ProductID: fx.product.ID,
		Quantity:  1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown customer, got %v", err)
	}
}

func TestUpdateItemQuantityZeroRemovesLine(t *testing.T) {
	fx := newFixture(t, newTestDB(t))

	if _, err := fx.svc.AddToCart(context.Background(), fx.customer.ID, AddToCartRequest{
		ProductID: fx.product.ID,
		Quantity:  2,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err := fx.svc.UpdateItemQuantity(context.Background(), fx.customer.ID, fx.product.ID, UpdateItemRequest{Quantity: 4})
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if cart.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", cart.Items[0].Quantity)
	}

	cart, err = fx.svc.UpdateItemQuantity(context.Background(), fx.customer.ID, fx.product.ID, UpdateItemRequest{Quantity: 0})
	if err != nil {
		t.Fatalf("zero quantity: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected line removed, cart has %d items", len(cart.Items))
	}
}

func TestAddToCartUnknownProductAccepted(t *testing.T) {
	fx := newFixture(t, newTestDB(t))

	// Product existence is only enforced at checkout; the line is stored
	// with a zero-priced placeholder until then.
	cart, err := fx.svc.AddToCart(context.Background(), fx.customer.ID, AddToCartRequest{
		ProductID: uuid.New(),
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("add unknown product: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected the line stored, got %d items", len(cart.Items))
	}
	if !cart.Items[0].Price.IsZero() {
		t.Fatalf("dangling line must price at zero, got %s", cart.Items[0].Price)
	}
}

func TestRemoveItemNotInCart(t *testing.T) {
	fx := newFixture(t, newTestDB(t))

	if _, err := fx.svc.GetCart(context.Background(), fx.customer.ID); err != nil {
		t.Fatalf("get cart: %v", err)
	}
	_, err := fx.svc.RemoveItem(context.Background(), fx.customer.ID, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing line, got %v", err)
	}
}
