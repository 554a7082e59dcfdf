package models

import (
	"time"

	"github.com/aslanbekov/pcforge-backend/pkg/enums"
	"github.com/google/uuid"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	Username     string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	FirstName    *string        `gorm:"column:first_name"`
	LastName     *string        `gorm:"column:last_name"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:'user'"`
	IsVerified   bool           `gorm:"column:is_verified;not null;default:false"`
	Avatar       *string        `gorm:"column:avatar"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
