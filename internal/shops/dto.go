package shops

import (
	"time"

	"github.com/prijslijst/pricelist-backend/internal/pricelist"
	"github.com/prijslijst/pricelist-backend/pkg/db/models"
)

// ShopInput carries the editable fields of a shop.
type ShopInput struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	AllowedIPs  []string `json:"allowed_ips" validate:"dive,ip"`
}

// ShopDetail combines a shop with its aggregated price list.
type ShopDetail struct {
	Shop *models.Shop    `json:"shop"`
	Menu *pricelist.Menu `json:"menu"`
}

// LastModified reports when a shop's menu content last changed. Display
// clients poll this to decide whether to refetch the full menu.
type LastModified struct {
	ShopID         string    `json:"shop_id"`
	LastModifiedAt time.Time `json:"last_modified_at"`
}
