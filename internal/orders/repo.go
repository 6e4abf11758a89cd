package orders

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	"github.com/prijslijst/pricelist-backend/pkg/enums"
	"github.com/prijslijst/pricelist-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// LockShop loads the shop row, holding a row lock for the remainder of the
// transaction on Postgres so concurrent order numbering serializes. Other
// dialects (sqlite in tests) skip the lock clause.
func (r *repository) LockShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var shop models.Shop
	if err := query.Where("id = ?", shopID).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// NextCustomerOrderID returns MAX(customer_order_id)+1 for the shop. Callers
// must hold the shop row lock for the result to be race free.
func (r *repository) NextCustomerOrderID(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var current int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("shop_id = ?", shopID).
		Select("COALESCE(MAX(customer_order_id), 0)").
		Scan(&current).Error
	if err != nil {
		return 0, err
	}
	return current + 1, nil
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Table").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListShopOrders(ctx context.Context, shopID uuid.UUID, status enums.OrderStatus, params pagination.Params) (*OrderList, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(params.Cursor))
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Preload("Table").
		Where("shop_id = ?", shopID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []models.Order
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	list := &OrderList{Orders: make([]OrderSummary, 0, len(records)), NextCursor: nextCursor}
	for _, record := range records {
		list.Orders = append(list.Orders, summarize(record))
	}
	return list, nil
}

func (r *repository) UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Order{}).Error
}

func summarize(order models.Order) OrderSummary {
	summary := OrderSummary{
		ID:              order.ID,
		ShopID:          order.ShopID,
		TableID:         order.TableID,
		CustomerOrderID: order.CustomerOrderID,
		Total:           order.Total,
		Status:          order.Status,
		OrderInfo:       order.OrderInfo,
		Notes:           order.Notes,
		CreatedAt:       order.CreatedAt,
		CompletedAt:     order.CompletedAt,
		CompletedBy:     order.CompletedBy,
	}
	if order.Table != nil {
		summary.TableName = &order.Table.Name
	}
	return summary
}
