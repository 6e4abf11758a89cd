package models

import (
	"time"

	"github.com/google/uuid"
)

// ShopToPrice enables a price template for one shop and one kind or product.
// Exactly one of KindID/ProductID is set. The use_* switches gate which tiers
// of the template the shop actually sells.
type ShopToPrice struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID      uuid.UUID  `gorm:"column:shop_id;type:uuid;not null;index"`
	PriceID     uuid.UUID  `gorm:"column:price_id;type:uuid;not null"`
	KindID      *uuid.UUID `gorm:"column:kind_id;type:uuid;index"`
	ProductID   *uuid.UUID `gorm:"column:product_id;type:uuid;index"`
	CategoryID  *uuid.UUID `gorm:"column:category_id;type:uuid"`
	Active      bool       `gorm:"column:active;not null;default:true"`
	New         bool       `gorm:"column:new;not null;default:false"`
	UseHalf     bool       `gorm:"column:use_half;not null;default:false"`
	UseOne      bool       `gorm:"column:use_one;not null;default:false"`
	UseTwoFive  bool       `gorm:"column:use_two_five;not null;default:false"`
	UseFive     bool       `gorm:"column:use_five;not null;default:false"`
	UseJoint    bool       `gorm:"column:use_joint;not null;default:false"`
	UsePiece    bool       `gorm:"column:use_piece;not null;default:false"`
	GramsJoint  float64    `gorm:"column:grams_joint;not null;default:0.4"`
	GramsPiece  float64    `gorm:"column:grams_piece;not null;default:0"`
	OrderNumber int        `gorm:"column:order_number;not null;default:0"`
	Price       *Price     `gorm:"foreignKey:PriceID"`
	Kind        *Kind      `gorm:"foreignKey:KindID"`
	Product     *Product   `gorm:"foreignKey:ProductID"`
	Category    *Category  `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	ModifiedAt  time.Time  `gorm:"column:modified_at;autoUpdateTime"`
}
