package pricelist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
)

// Repository defines persistence operations for shop price rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindShopRows(ctx context.Context, shopID uuid.UUID) ([]models.ShopToPrice, error)
	FindMenuRows(ctx context.Context, shopID uuid.UUID) ([]models.ShopToPrice, error)
	FindRow(ctx context.Context, id uuid.UUID) (*models.ShopToPrice, error)
	CreateRow(ctx context.Context, row *models.ShopToPrice) (*models.ShopToPrice, error)
	UpdateRow(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteRow(ctx context.Context, id uuid.UUID) error
	FindPrices(ctx context.Context) ([]models.Price, error)
	FindPrice(ctx context.Context, id uuid.UUID) (*models.Price, error)
	CreatePrice(ctx context.Context, price *models.Price) (*models.Price, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeletePrice(ctx context.Context, id uuid.UUID) error
	FindShopIDsForPrice(ctx context.Context, priceID uuid.UUID) ([]uuid.UUID, error)
	TouchShop(ctx context.Context, shopID uuid.UUID) error
}
