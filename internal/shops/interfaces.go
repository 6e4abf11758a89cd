package shops

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
)

// Repository defines persistence operations for shops.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindShop(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	ListShops(ctx context.Context) ([]models.Shop, error)
	CreateShop(ctx context.Context, shop *models.Shop) (*models.Shop, error)
	UpdateShop(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteShop(ctx context.Context, id uuid.UUID) error
}
