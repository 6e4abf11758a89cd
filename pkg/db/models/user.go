package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/prijslijst/pricelist-backend/pkg/enums"
)

// User is a staff account used for order management.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string         `gorm:"column:username;not null;uniqueIndex"`
	Email        string         `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Active       bool           `gorm:"column:active;not null;default:true"`
	Role         enums.UserRole `gorm:"column:role;not null;default:'employee'"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
