package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	"github.com/prijslijst/pricelist-backend/pkg/enums"
	"github.com/prijslijst/pricelist-backend/pkg/pagination"
)

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LockShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error)
	NextCustomerOrderID(ctx context.Context, shopID uuid.UUID) (int64, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListShopOrders(ctx context.Context, shopID uuid.UUID, status enums.OrderStatus, params pagination.Params) (*OrderList, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
