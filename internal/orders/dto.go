package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/prijslijst/pricelist-backend/pkg/enums"
	"github.com/prijslijst/pricelist-backend/pkg/types"
)

// CreateOrderInput is the public order submission payload.
type CreateOrderInput struct {
	ShopID    uuid.UUID        `json:"shop_id" validate:"required"`
	TableID   *uuid.UUID       `json:"table_id"`
	OrderInfo types.OrderLines `json:"order_info" validate:"required,min=1"`
	Total     float64          `json:"total" validate:"gte=0"`
	Notes     *string          `json:"notes"`

	// CustomerOrderID is accepted from legacy table devices and discarded;
	// the sequencer assigns the real number.
	CustomerOrderID *int64 `json:"customer_order_id"`
}

// UpdateOrderInput carries the staff-editable fields of an order. A terminal
// Status runs the usual transition, stamping completion metadata.
type UpdateOrderInput struct {
	TableID *uuid.UUID         `json:"table_id"`
	Notes   *string            `json:"notes"`
	Status  *enums.OrderStatus `json:"status"`

	ActorID uuid.UUID `json:"-"`
}

// TransitionInput captures a status transition request.
type TransitionInput struct {
	OrderID uuid.UUID
	Status  enums.OrderStatus
	ActorID uuid.UUID
}

// OrderSummary is the list representation of an order.
type OrderSummary struct {
	ID              uuid.UUID         `json:"id"`
	ShopID          uuid.UUID         `json:"shop_id"`
	TableID         *uuid.UUID        `json:"table_id,omitempty"`
	TableName       *string           `json:"table_name,omitempty"`
	CustomerOrderID int64             `json:"customer_order_id"`
	Total           float64           `json:"total"`
	Status          enums.OrderStatus `json:"status"`
	OrderInfo       types.OrderLines  `json:"order_info"`
	Notes           *string           `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	CompletedBy     *uuid.UUID        `json:"completed_by,omitempty"`
}

// OrderList wraps paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// CreateOrderResult is returned to the table device after acceptance.
type CreateOrderResult struct {
	ID              uuid.UUID         `json:"id"`
	CustomerOrderID int64             `json:"customer_order_id"`
	Total           float64           `json:"total"`
	Status          enums.OrderStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	TableID         *uuid.UUID        `json:"table_id,omitempty"`
	TableName       *string           `json:"table_name,omitempty"`
}
