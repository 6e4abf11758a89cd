package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/prijslijst/pricelist-backend/pkg/enums"
	"github.com/prijslijst/pricelist-backend/pkg/types"
)

// Order is a customer order placed from a table device. CustomerOrderID is a
// shop-scoped sequence starting at 1; OrderInfo is frozen at creation.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID          uuid.UUID         `gorm:"column:shop_id;type:uuid;not null;index"`
	TableID         *uuid.UUID        `gorm:"column:table_id;type:uuid"`
	OrderInfo       types.OrderLines  `gorm:"column:order_info;type:jsonb;serializer:json;not null"`
	Total           float64           `gorm:"column:total;type:numeric(10,2);not null"`
	CustomerOrderID int64             `gorm:"column:customer_order_id;not null"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Notes           *string           `gorm:"column:notes"`
	CompletedAt     *time.Time        `gorm:"column:completed_at"`
	CompletedBy     *uuid.UUID        `gorm:"column:completed_by;type:uuid"`
	Table           *Table            `gorm:"foreignKey:TableID"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
