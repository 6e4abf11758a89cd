package models

import (
	"time"

	"github.com/google/uuid"
)

// MainCategory groups categories across shops for top-level navigation.
type MainCategory struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	Icon        *string   `gorm:"column:icon"`
	OrderNumber int       `gorm:"column:order_number;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Category is a shop-scoped menu section. Cannabis categories feed the
// weight ceiling during order validation.
type Category struct {
	ID             uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID         uuid.UUID     `gorm:"column:shop_id;type:uuid;not null;index"`
	MainCategoryID *uuid.UUID    `gorm:"column:main_category_id;type:uuid"`
	Name           string        `gorm:"column:name;not null"`
	NameEN         *string       `gorm:"column:name_en"`
	Description    *string       `gorm:"column:description"`
	Icon           *string       `gorm:"column:icon"`
	Color          *string       `gorm:"column:color"`
	Cannabis       bool          `gorm:"column:cannabis;not null;default:false"`
	Image1         *string       `gorm:"column:image_1"`
	Image2         *string       `gorm:"column:image_2"`
	OrderNumber    int           `gorm:"column:order_number;not null;default:0"`
	MainCategory   *MainCategory `gorm:"foreignKey:MainCategoryID"`
	CreatedAt      time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
