package models

import (
	"time"

	"github.com/google/uuid"
)

// Price is a reusable price template keyed by the POS internal product id.
// A nil tier means the template does not carry that quantity at all.
type Price struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InternalProductID string    `gorm:"column:internal_product_id;not null;uniqueIndex"`
	Half              *float64  `gorm:"column:half;type:numeric(8,2)"`
	One               *float64  `gorm:"column:one;type:numeric(8,2)"`
	TwoFive           *float64  `gorm:"column:two_five;type:numeric(8,2)"`
	Five              *float64  `gorm:"column:five;type:numeric(8,2)"`
	Joint             *float64  `gorm:"column:joint;type:numeric(8,2)"`
	Piece             *float64  `gorm:"column:piece;type:numeric(8,2)"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	ModifiedAt        time.Time `gorm:"column:modified_at;autoUpdateTime"`
}
