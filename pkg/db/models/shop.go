package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Shop represents a single coffeeshop tenant.
type Shop struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string         `gorm:"column:name;not null;uniqueIndex"`
	Description    *string        `gorm:"column:description"`
	AllowedIPs     pq.StringArray `gorm:"column:allowed_ips;type:text[]"`
	LastModifiedAt time.Time      `gorm:"column:last_modified_at;autoUpdateTime"`
	Categories     []Category     `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	Tables         []Table        `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	Orders         []Order        `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
