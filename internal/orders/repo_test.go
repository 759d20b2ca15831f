package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/halleyx/commerce-backend/pkg/db/models"
	"github.com/halleyx/commerce-backend/pkg/enums"
	"github.com/halleyx/commerce-backend/pkg/pagination"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:orders_repo_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Customer{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	))
	return conn
}

func seedOrder(t *testing.T, conn *gorm.DB, customerID uuid.UUID, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		CustomerID:  customerID,
		TotalAmount: decimal.RequireFromString("10.00"),
		Status:      enums.OrderStatusPending,
	}
	require.NoError(t, conn.Create(order).Error)
	require.NoError(t, conn.Model(order).UpdateColumn("created_at", createdAt).Error)
	return order
}

func TestRepositoryListByCustomerOrderingAndCursor(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository(conn)
	customerID := uuid.New()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	oldest := seedOrder(t, conn, customerID, base)
	middle := seedOrder(t, conn, customerID, base.Add(time.Hour))
	newest := seedOrder(t, conn, customerID, base.Add(2*time.Hour))
	seedOrder(t, conn, uuid.New(), base.Add(3*time.Hour))

	rows, err := repo.ListByCustomer(context.Background(), customerID, nil, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, newest.ID, rows[0].ID)
	assert.Equal(t, middle.ID, rows[1].ID)
	assert.Equal(t, oldest.ID, rows[2].ID)

	cursor := &pagination.Cursor{CreatedAt: rows[1].CreatedAt, ID: rows[1].ID}
	rest, err := repo.ListByCustomer(context.Background(), customerID, cursor, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, oldest.ID, rest[0].ID)
}

func TestRepositoryFindByIDPreloadsProducts(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository(conn)

	product := &models.Product{
		Name:          "Poster",
		Price:         decimal.RequireFromString("5.00"),
		StockQuantity: 3,
	}
	require.NoError(t, conn.Create(product).Error)

	order := &models.Order{
		CustomerID:  uuid.New(),
		TotalAmount: decimal.RequireFromString("10.00"),
		Status:      enums.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductID: product.ID, Quantity: 2},
		},
	}
	require.NoError(t, repo.Create(context.Background(), order))

	loaded, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	require.NotNil(t, loaded.Items[0].Product)
	assert.Equal(t, "Poster", loaded.Items[0].Product.Name)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository(conn)

	order := seedOrder(t, conn, uuid.New(), time.Now().UTC())
	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, enums.OrderStatusShipped))

	loaded, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, loaded.Status)

	err = repo.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusShipped)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
