package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	dbtypes "github.com/aslanbekov/pcforge-backend/pkg/db/types"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
)

// Component represents a purchasable catalog item in exactly one hardware
// category. Rows are immutable once seeded; the builder references them by id.
type Component struct {
	ID           uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string                  `gorm:"column:name;not null"`
	Brand        string                  `gorm:"column:brand;not null;index"`
	Model        string                  `gorm:"column:model;not null"`
	Category     enums.ComponentCategory `gorm:"column:category;type:text;not null;index"`
	Price        int                     `gorm:"column:price;not null"`
	Currency     enums.Currency          `gorm:"column:currency;type:text;not null;default:'KZT'"`
	Rating       float64                 `gorm:"column:rating;type:numeric(3,1);not null;default:0"`
	Availability enums.Availability      `gorm:"column:availability;type:text;not null;default:'in_stock'"`
	Specs        dbtypes.SpecMap         `gorm:"column:specs;type:jsonb;not null;default:'{}'"`
	Color        string                  `gorm:"column:color;not null;default:''"`
	Description  *string                 `gorm:"column:description"`
	Features     pq.StringArray          `gorm:"column:features;type:text[];not null;default:ARRAY[]::text[]"`
	Image        *string                 `gorm:"column:image"`
	Popularity   int                     `gorm:"column:popularity;not null;default:0"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
