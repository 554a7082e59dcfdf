package components

import (
	"time"

	"github.com/google/uuid"

	"github.com/aslanbekov/pcforge-backend/pkg/db/models"
	dbtypes "github.com/aslanbekov/pcforge-backend/pkg/db/types"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
	"github.com/aslanbekov/pcforge-backend/pkg/pagination"
)

// ComponentDTO is the catalog row shape returned by the API.
type ComponentDTO struct {
	ID           uuid.UUID               `json:"id"`
	Name         string                  `json:"name"`
	Brand        string                  `json:"brand"`
	Model        string                  `json:"model"`
	Category     enums.ComponentCategory `json:"category"`
	Price        int                     `json:"price"`
	Currency     enums.Currency          `json:"currency"`
	Rating       float64                 `json:"rating"`
	Availability enums.Availability      `json:"availability"`
	Specs        dbtypes.SpecMap         `json:"specs"`
	Color        string                  `json:"color"`
	Description  *string                 `json:"description,omitempty"`
	Features     []string                `json:"features"`
	Image        *string                 `json:"image,omitempty"`
	Popularity   int                     `json:"popularity"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

// ListFilters describe the supported filter knobs for the catalog endpoint.
type ListFilters struct {
	Search    string
	Category  *enums.ComponentCategory
	Brand     *string
	MinPrice  *int
	MaxPrice  *int
	InStock   *bool
	SortBy    enums.SortKey
	SortOrder enums.SortOrder
}

// ListResponse is the paginated catalog payload.
type ListResponse struct {
	Components []ComponentDTO `json:"components"`
	pagination.Page
}

func FromModel(m *models.Component) *ComponentDTO {
	if m == nil {
		return nil
	}
	features := append([]string(nil), []string(m.Features)...)
	if features == nil {
		features = []string{}
	}
	return &ComponentDTO{
		ID:           m.ID,
		Name:         m.Name,
		Brand:        m.Brand,
		Model:        m.Model,
		Category:     m.Category,
		Price:        m.Price,
		Currency:     m.Currency,
		Rating:       m.Rating,
		Availability: m.Availability,
		Specs:        m.Specs,
		Color:        m.Color,
		Description:  m.Description,
		Features:     features,
		Image:        m.Image,
		Popularity:   m.Popularity,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
