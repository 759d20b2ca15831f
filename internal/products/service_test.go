package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/halleyx/commerce-backend/pkg/db/models"
	pkgerrors "github.com/halleyx/commerce-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:products_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestCreateAndGet(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	created, err := svc.Create(context.Background(), CreateRequest{
		Name:          "Mechanical Keyboard",
		Description:   "Tenkeyless",
		Price:         decimal.RequireFromString("89.99"),
		StockQuantity: 12,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Price.Equal(decimal.RequireFromString("89.99")) {
		t.Fatalf("unexpected price %s", got.Price)
	}
	if got.StockQuantity != 12 {
		t.Fatalf("unexpected stock %d", got.StockQuantity)
	}
}

func TestCreateRejectsNegativeValues(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.Create(context.Background(), CreateRequest{
		Name:  "Bad Listing",
		Price: decimal.RequireFromString("-1"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative price, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateRequest{
		Name:          "Bad Listing",
		Price:         decimal.RequireFromString("1"),
		StockQuantity: -3,
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative stock, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	created, err := svc.Create(context.Background(), CreateRequest{
		Name:          "Desk Lamp",
		Price:         decimal.RequireFromString("20.00"),
		StockQuantity: 5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPrice := decimal.RequireFromString("25.50")
	updated, err := svc.Update(context.Background(), created.ID, UpdateRequest{Price: &newPrice})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Price.Equal(newPrice) {
		t.Fatalf("expected updated price, got %s", updated.Price)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = svc.GetByID(context.Background(), created.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDecrementStockGuard(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)

	created, err := repo.Create(context.Background(), CreateProductDTO{
		Name:          "Limited Run",
		Price:         decimal.RequireFromString("10.00"),
		StockQuantity: 3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.DecrementStock(context.Background(), created.ID, 2); err != nil {
		t.Fatalf("decrement within stock: %v", err)
	}
	if err := repo.DecrementStock(context.Background(), created.ID, 2); err != ErrInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	fresh, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.StockQuantity != 1 {
		t.Fatalf("expected 1 unit left, got %d", fresh.StockQuantity)
	}
}
