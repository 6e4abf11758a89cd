package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	"github.com/prijslijst/pricelist-backend/pkg/enums"
	"github.com/prijslijst/pricelist-backend/pkg/pagination"
	"github.com/prijslijst/pricelist-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	shops := `
CREATE TABLE IF NOT EXISTS shops (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  allowed_ips TEXT,
  last_modified_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	tables := `
CREATE TABLE IF NOT EXISTS tables (
  id TEXT PRIMARY KEY,
  shop_id TEXT NOT NULL,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  shop_id TEXT NOT NULL,
  table_id TEXT,
  order_info TEXT NOT NULL,
  total NUMERIC NOT NULL,
  customer_order_id INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  notes TEXT,
  completed_at DATETIME,
  completed_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(shops).Error)
	require.NoError(t, db.Exec(tables).Error)
	require.NoError(t, db.Exec(orders).Error)
	return db
}

func newShop(t *testing.T, db *gorm.DB, name string) *models.Shop {
	t.Helper()

	shop := &models.Shop{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(shop).Error)
	return shop
}

func newOrder(t *testing.T, db *gorm.DB, shop *models.Shop, number int64, created time.Time, status enums.OrderStatus) *models.Order {
	t.Helper()

	kindID := uuid.New()
	order := &models.Order{
		ID:     uuid.New(),
		ShopID: shop.ID,
		OrderInfo: types.OrderLines{
			{Description: "1 gram", Price: 10, Quantity: 1, KindID: &kindID},
		},
		Total:           10,
		CustomerOrderID: number,
		Status:          status,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestNextCustomerOrderID_perShopSequence(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shopA := newShop(t, db, "Shop A "+uuid.NewString())
	shopB := newShop(t, db, "Shop B "+uuid.NewString())

	next, err := repo.NextCustomerOrderID(ctx, shopA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	now := time.Now().UTC()
	newOrder(t, db, shopA, 1, now, enums.OrderStatusPending)
	newOrder(t, db, shopA, 2, now, enums.OrderStatusPending)

	next, err = repo.NextCustomerOrderID(ctx, shopA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), next)

	// the other shop keeps its own sequence
	next, err = repo.NextCustomerOrderID(ctx, shopB.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestLockShop_missingShop(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.LockShop(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListShopOrders_statusAndPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shop := newShop(t, db, "List Shop "+uuid.NewString())
	now := time.Now().UTC()
	newOrder(t, db, shop, 1, now.Add(-2*time.Hour), enums.OrderStatusPending)
	newOrder(t, db, shop, 2, now.Add(-time.Hour), enums.OrderStatusPending)
	newOrder(t, db, shop, 3, now, enums.OrderStatusComplete)

	pending, err := repo.ListShopOrders(ctx, shop.ID, enums.OrderStatusPending, pagination.Params{Limit: 1})
	require.NoError(t, err)
	require.Len(t, pending.Orders, 1)
	assert.Equal(t, int64(2), pending.Orders[0].CustomerOrderID)
	assert.NotEmpty(t, pending.NextCursor)

	second, err := repo.ListShopOrders(ctx, shop.ID, enums.OrderStatusPending, pagination.Params{Limit: 1, Cursor: pending.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Equal(t, int64(1), second.Orders[0].CustomerOrderID)
	assert.Empty(t, second.NextCursor)

	complete, err := repo.ListShopOrders(ctx, shop.ID, enums.OrderStatusComplete, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, complete.Orders, 1)
	assert.Equal(t, int64(3), complete.Orders[0].CustomerOrderID)
}

func TestUpdateAndDeleteOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shop := newShop(t, db, "Mutate Shop "+uuid.NewString())
	order := newOrder(t, db, shop, 1, time.Now().UTC(), enums.OrderStatusPending)

	actor := uuid.New()
	now := time.Now().UTC()
	require.NoError(t, repo.UpdateOrder(ctx, order.ID, map[string]any{
		"status":       enums.OrderStatusComplete,
		"completed_at": now,
		"completed_by": actor,
	}))

	updated, err := repo.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusComplete, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	require.NotNil(t, updated.CompletedBy)
	assert.Equal(t, actor, *updated.CompletedBy)

	require.NoError(t, repo.DeleteOrder(ctx, order.ID))
	_, err = repo.FindOrder(ctx, order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderInfoRoundTrip(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shop := newShop(t, db, "Lines Shop "+uuid.NewString())
	order := newOrder(t, db, shop, 1, time.Now().UTC(), enums.OrderStatusPending)

	loaded, err := repo.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.OrderInfo, 1)
	assert.Equal(t, "1 gram", loaded.OrderInfo[0].Description)
	assert.Equal(t, 1, loaded.OrderInfo[0].Quantity)
}
