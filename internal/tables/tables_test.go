package tables

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/prijslijst/pricelist-backend/pkg/errors"
)

func setupTableTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS tables (
  id TEXT PRIMARY KEY,
  shop_id TEXT NOT NULL,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

func newTableService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupTableTestDB(t)))
	require.NoError(t, err)
	return svc
}

func TestTableLifecycle(t *testing.T) {
	svc := newTableService(t)
	ctx := context.Background()
	shopID := uuid.New()

	created, err := svc.Create(ctx, TableInput{ShopID: shopID, Name: "Tafel 1"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, TableInput{ShopID: shopID, Name: "Tafel 2"})
	require.NoError(t, err)

	listed, err := svc.ListForShop(ctx, shopID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Tafel 1", listed[0].Name)

	updated, err := svc.Update(ctx, created.ID, TableInput{ShopID: shopID, Name: "Raamtafel"})
	require.NoError(t, err)
	assert.Equal(t, "Raamtafel", updated.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateTableValidation(t *testing.T) {
	svc := newTableService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, TableInput{Name: "Tafel"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(ctx, TableInput{ShopID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
