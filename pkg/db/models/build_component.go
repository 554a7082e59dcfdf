package models

import (
	"time"

	"github.com/aslanbekov/pcforge-backend/pkg/enums"
	"github.com/google/uuid"
)

// BuildComponent ties one catalog component to a build slot. The unique index
// on (build_id, category) keeps a build at one component per category.
type BuildComponent struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BuildID     uuid.UUID               `gorm:"column:build_id;type:uuid;not null;index;uniqueIndex:build_components_build_category_key"`
	ComponentID uuid.UUID               `gorm:"column:component_id;type:uuid;not null;index"`
	Category    enums.ComponentCategory `gorm:"column:category;type:text;not null;uniqueIndex:build_components_build_category_key"`
	Quantity    int                     `gorm:"column:quantity;not null;default:1"`
	Component   *Component              `gorm:"foreignKey:ComponentID"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
}
