package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Build is a named, persisted snapshot of a component selection.
type Build struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	Name        string           `gorm:"column:name;not null"`
	Description *string          `gorm:"column:description"`
	IsPublic    bool             `gorm:"column:is_public;not null;default:false;index"`
	TotalPrice  int              `gorm:"column:total_price;not null;default:0"`
	Tags        pq.StringArray   `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	User        *User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Components  []BuildComponent `gorm:"foreignKey:BuildID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
