package types

import (
	"fmt"

	"github.com/google/uuid"
)

// OrderLine is a single row of an order's order_info payload. Lines are
// immutable after the order is created.
type OrderLine struct {
	Description       string     `json:"description"`
	Price             float64    `json:"price"`
	KindID            *uuid.UUID `json:"kind_id,omitempty"`
	KindName          *string    `json:"kind_name,omitempty"`
	ProductID         *uuid.UUID `json:"product_id,omitempty"`
	ProductName       *string    `json:"product_name,omitempty"`
	InternalProductID string     `json:"internal_product_id,omitempty"`
	Quantity          int        `json:"quantity"`
}

// OrderLines is stored on orders as a JSON document.
type OrderLines []OrderLine

// Validate checks the fixed line schema: a positive quantity, a non-negative
// price, and exactly one of kind_id/product_id.
func (l OrderLine) Validate() error {
	if l.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", l.Quantity)
	}
	if l.Price < 0 {
		return fmt.Errorf("price must not be negative, got %v", l.Price)
	}
	hasKind := l.KindID != nil
	hasProduct := l.ProductID != nil
	if hasKind == hasProduct {
		return fmt.Errorf("exactly one of kind_id or product_id is required")
	}
	return nil
}

// DisplayName returns the customer-facing label for the line.
func (l OrderLine) DisplayName() string {
	if l.KindName != nil && *l.KindName != "" {
		return *l.KindName
	}
	if l.ProductName != nil && *l.ProductName != "" {
		return *l.ProductName
	}
	return l.Description
}

// Validate checks every line in the document.
func (ls OrderLines) Validate() error {
	if len(ls) == 0 {
		return fmt.Errorf("order requires at least one line")
	}
	for i, line := range ls {
		if err := line.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}
	return nil
}
