package shops

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/internal/pricelist"
	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	pkgerrors "github.com/prijslijst/pricelist-backend/pkg/errors"
)

func setupShopTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS shops (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT,
  allowed_ips TEXT,
  last_modified_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

type stubMenus struct {
	menus       map[uuid.UUID]*pricelist.Menu
	invalidated []uuid.UUID
}

func (s *stubMenus) AggregateMenu(_ context.Context, shopID uuid.UUID) (*pricelist.Menu, error) {
	if menu, ok := s.menus[shopID]; ok {
		return menu, nil
	}
	return &pricelist.Menu{ShopID: shopID}, nil
}

func (s *stubMenus) InvalidateMenu(_ context.Context, shopID uuid.UUID) {
	s.invalidated = append(s.invalidated, shopID)
}

func newShopFixture(t *testing.T) (Service, *gorm.DB, *stubMenus) {
	t.Helper()
	db := setupShopTestDB(t)
	menus := &stubMenus{menus: map[uuid.UUID]*pricelist.Menu{}}
	svc, err := NewService(NewRepository(db), menus, nil)
	require.NoError(t, err)
	return svc, db, menus
}

func TestCreateAndFindShop(t *testing.T) {
	svc, _, _ := newShopFixture(t)
	ctx := context.Background()
	name := "Shop " + uuid.NewString()

	created, err := svc.CreateShop(ctx, ShopInput{Name: name, AllowedIPs: []string{"10.0.0.1"}})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := svc.FindShop(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, name, found.Name)
}

func TestCreateShopRequiresName(t *testing.T) {
	svc, _, _ := newShopFixture(t)

	_, err := svc.CreateShop(context.Background(), ShopInput{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestFindShopNotFound(t *testing.T) {
	svc, _, _ := newShopFixture(t)

	_, err := svc.FindShop(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestGetDetailIncludesMenu(t *testing.T) {
	svc, _, menus := newShopFixture(t)
	ctx := context.Background()

	created, err := svc.CreateShop(ctx, ShopInput{Name: "Shop " + uuid.NewString()})
	require.NoError(t, err)

	menus.menus[created.ID] = &pricelist.Menu{
		ShopID: created.ID,
		Rows:   []pricelist.MenuRow{{KindName: strPtr("Amnesia Haze")}},
	}

	detail, err := svc.GetDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.Shop.ID)
	require.Len(t, detail.Menu.Rows, 1)
}

func TestGetLastModified(t *testing.T) {
	svc, db, _ := newShopFixture(t)
	ctx := context.Background()

	created, err := svc.CreateShop(ctx, ShopInput{Name: "Shop " + uuid.NewString()})
	require.NoError(t, err)

	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(&models.Shop{}).Where("id = ?", created.ID).
		Update("last_modified_at", stamp).Error)

	lm, err := svc.GetLastModified(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), lm.ShopID)
	assert.True(t, lm.LastModifiedAt.Equal(stamp))
}

func TestDeleteShopInvalidatesMenu(t *testing.T) {
	svc, _, menus := newShopFixture(t)
	ctx := context.Background()

	created, err := svc.CreateShop(ctx, ShopInput{Name: "Shop " + uuid.NewString()})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShop(ctx, created.ID))
	assert.Equal(t, []uuid.UUID{created.ID}, menus.invalidated)

	err = svc.DeleteShop(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func strPtr(s string) *string { return &s }
