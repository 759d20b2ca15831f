package customers

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/halleyx/commerce-backend/pkg/db/models"
	"github.com/halleyx/commerce-backend/pkg/enums"
	pkgerrors "github.com/halleyx/commerce-backend/pkg/errors"
	"github.com/halleyx/commerce-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:customers_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Customer{}, &models.Cart{}, &models.CartItem{}, &models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedCustomer(t *testing.T, conn *gorm.DB, email string) *models.Customer {
	t.Helper()
	customer := CreateCustomerDTO{
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA",
		FirstName:    "Test",
		LastName:     "Shopper",
	}.ToModel()
	if err := conn.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestGetByID(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	seeded := seedCustomer(t, conn, "shopper@example.com")

	got, err := svc.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "shopper@example.com" {
		t.Fatalf("unexpected email %q", got.Email)
	}
	if got.Status != enums.CustomerStatusActive {
		t.Fatalf("expected active status, got %s", got.Status)
	}

	_, err = svc.GetByID(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfileAndConflict(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	first := seedCustomer(t, conn, "first@example.com")
	seedCustomer(t, conn, "second@example.com")

	newName := "Renamed"
	updated, err := svc.Update(context.Background(), first.ID, UpdateRequest{FirstName: &newName})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "Renamed" {
		t.Fatalf("expected renamed profile, got %q", updated.FirstName)
	}

	taken := "Second@Example.com"
	_, err = svc.Update(context.Background(), first.ID, UpdateRequest{Email: &taken})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestSetStatusBlocksCustomer(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	seeded := seedCustomer(t, conn, "blockme@example.com")

	blocked, err := svc.SetStatus(context.Background(), seeded.ID, enums.CustomerStatusBlocked)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if blocked.Status != enums.CustomerStatusBlocked {
		t.Fatalf("expected blocked, got %s", blocked.Status)
	}

	_, err = svc.SetStatus(context.Background(), seeded.ID, enums.CustomerStatus("SUSPENDED"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	seeded := seedCustomer(t, conn, "gone@example.com")

	if err := svc.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err := svc.Delete(context.Background(), seeded.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for second delete, got %v", err)
	}
}

func TestListPaginates(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	for i := 0; i < 3; i++ {
		seedCustomer(t, conn, fmt.Sprintf("page%d@example.com", i))
	}

	page, err := svc.List(context.Background(), pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Customers) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page.Customers))
	}
	if page.NextCursor == "" {
		t.Fatal("expected next cursor for remaining rows")
	}

	rest, err := svc.List(context.Background(), pagination.Params{Limit: 2, Cursor: page.NextCursor})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(rest.Customers) != 1 {
		t.Fatalf("expected 1 remaining row, got %d", len(rest.Customers))
	}
	if rest.NextCursor != "" {
		t.Fatalf("expected empty cursor at end, got %q", rest.NextCursor)
	}
}
