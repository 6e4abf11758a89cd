package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a horeca item (drinks, snacks) listed on shop menus.
type Product struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name               string    `gorm:"column:name;not null"`
	ShortDescriptionNL *string   `gorm:"column:short_description_nl"`
	DescriptionNL      *string   `gorm:"column:description_nl"`
	ShortDescriptionEN *string   `gorm:"column:short_description_en"`
	DescriptionEN      *string   `gorm:"column:description_en"`
	Image1             *string   `gorm:"column:image_1"`
	Image2             *string   `gorm:"column:image_2"`
	Image3             *string   `gorm:"column:image_3"`
	Image4             *string   `gorm:"column:image_4"`
	Image5             *string   `gorm:"column:image_5"`
	Image6             *string   `gorm:"column:image_6"`
	Approved           bool      `gorm:"column:approved;not null;default:false"`
	Complete           bool      `gorm:"column:complete;not null;default:false"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	ModifiedAt         time.Time `gorm:"column:modified_at;autoUpdateTime"`
}
