package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind represents a cannabis strain listed on shop menus. The cultivar flags
// (C/H/I/S) mark CBD, hybrid, indica and sativa lineage.
type Kind struct {
	ID                 uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name               string         `gorm:"column:name;not null"`
	ShortDescriptionNL *string        `gorm:"column:short_description_nl"`
	DescriptionNL      *string        `gorm:"column:description_nl"`
	ShortDescriptionEN *string        `gorm:"column:short_description_en"`
	DescriptionEN      *string        `gorm:"column:description_en"`
	C                  bool           `gorm:"column:c;not null;default:false"`
	H                  bool           `gorm:"column:h;not null;default:false"`
	I                  bool           `gorm:"column:i;not null;default:false"`
	S                  bool           `gorm:"column:s;not null;default:false"`
	Image1             *string        `gorm:"column:image_1"`
	Image2             *string        `gorm:"column:image_2"`
	Image3             *string        `gorm:"column:image_3"`
	Image4             *string        `gorm:"column:image_4"`
	Image5             *string        `gorm:"column:image_5"`
	Image6             *string        `gorm:"column:image_6"`
	Approved           bool           `gorm:"column:approved;not null;default:false"`
	ApprovedAt         *time.Time     `gorm:"column:approved_at"`
	ApprovedBy         *uuid.UUID     `gorm:"column:approved_by;type:uuid"`
	Complete           bool           `gorm:"column:complete;not null;default:false"`
	Tags               []KindToTag    `gorm:"foreignKey:KindID;constraint:OnDelete:CASCADE"`
	Flavors            []KindToFlavor `gorm:"foreignKey:KindID;constraint:OnDelete:CASCADE"`
	Strains            []KindToStrain `gorm:"foreignKey:KindID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	ModifiedAt         time.Time      `gorm:"column:modified_at;autoUpdateTime"`
}

// KindToTag links a kind to an effect tag with a reported strength.
type KindToTag struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	KindID uuid.UUID `gorm:"column:kind_id;type:uuid;not null;uniqueIndex:idx_kind_tag"`
	TagID  uuid.UUID `gorm:"column:tag_id;type:uuid;not null;uniqueIndex:idx_kind_tag"`
	Amount int       `gorm:"column:amount;not null;default:0"`
	Tag    *Tag      `gorm:"foreignKey:TagID"`
}

// KindToFlavor links a kind to a flavor.
type KindToFlavor struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	KindID   uuid.UUID `gorm:"column:kind_id;type:uuid;not null;uniqueIndex:idx_kind_flavor"`
	FlavorID uuid.UUID `gorm:"column:flavor_id;type:uuid;not null;uniqueIndex:idx_kind_flavor"`
	Flavor   *Flavor   `gorm:"foreignKey:FlavorID"`
}

// KindToStrain links a kind to a parent strain.
type KindToStrain struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	KindID   uuid.UUID `gorm:"column:kind_id;type:uuid;not null;uniqueIndex:idx_kind_strain"`
	StrainID uuid.UUID `gorm:"column:strain_id;type:uuid;not null;uniqueIndex:idx_kind_strain"`
	Strain   *Strain   `gorm:"foreignKey:StrainID"`
}
