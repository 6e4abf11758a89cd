package pricelist

import (
	"time"

	"github.com/google/uuid"
)

// MenuRow is one rendered price-list entry for a shop. Tier amounts are only
// present when the shop enables the tier and the template prices it.
type MenuRow struct {
	ID                 uuid.UUID  `json:"id"`
	InternalProductID  string     `json:"internal_product_id"`
	Active             bool       `json:"active"`
	New                bool       `json:"new"`
	KindID             *uuid.UUID `json:"kind_id,omitempty"`
	KindName           *string    `json:"kind_name,omitempty"`
	KindC              *bool      `json:"kind_c,omitempty"`
	KindH              *bool      `json:"kind_h,omitempty"`
	KindI              *bool      `json:"kind_i,omitempty"`
	KindS              *bool      `json:"kind_s,omitempty"`
	KindShortDescNL    *string    `json:"kind_short_description_nl,omitempty"`
	KindShortDescEN    *string    `json:"kind_short_description_en,omitempty"`
	KindImage          *string    `json:"kind_image,omitempty"`
	StrainNames        []string   `json:"strains,omitempty"`
	TagNames           []string   `json:"tags,omitempty"`
	FlavorNames        []string   `json:"flavors,omitempty"`
	ProductID          *uuid.UUID `json:"product_id,omitempty"`
	ProductName        *string    `json:"product_name,omitempty"`
	ProductShortDescNL *string    `json:"product_short_description_nl,omitempty"`
	ProductShortDescEN *string    `json:"product_short_description_en,omitempty"`
	ProductImage       *string    `json:"product_image,omitempty"`
	CategoryID         *uuid.UUID `json:"category_id,omitempty"`
	CategoryName       *string    `json:"category_name,omitempty"`
	CategoryNameEN     *string    `json:"category_name_en,omitempty"`
	CategoryColor      *string    `json:"category_color,omitempty"`
	MainCategoryName   *string    `json:"main_category_name,omitempty"`
	Half               *float64   `json:"half,omitempty"`
	One                *float64   `json:"one,omitempty"`
	TwoFive            *float64   `json:"two_five,omitempty"`
	Five               *float64   `json:"five,omitempty"`
	Joint              *float64   `json:"joint,omitempty"`
	Piece              *float64   `json:"piece,omitempty"`
	GramsJoint         float64    `json:"grams_joint"`
	GramsPiece         float64    `json:"grams_piece"`
	OrderNumber        int        `json:"order_number"`
	CreatedAt          time.Time  `json:"created_at"`
	ModifiedAt         time.Time  `json:"modified_at"`
}

// Menu is the full aggregated price list for one shop.
type Menu struct {
	ShopID uuid.UUID `json:"shop_id"`
	Rows   []MenuRow `json:"prices"`
}
