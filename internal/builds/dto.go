package builds

import (
	"time"

	"github.com/google/uuid"

	"github.com/aslanbekov/pcforge-backend/internal/components"
	"github.com/aslanbekov/pcforge-backend/pkg/db/models"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
	"github.com/aslanbekov/pcforge-backend/pkg/pagination"
)

// BuildComponentInput selects one catalog component for a build slot.
type BuildComponentInput struct {
	ComponentID uuid.UUID `json:"componentId" validate:"required"`
	Quantity    int       `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

// SaveBuildRequest is the payload for creating or replacing a build.
type SaveBuildRequest struct {
	Name        string                                          `json:"name" validate:"required,max=120"`
	Description *string                                         `json:"description,omitempty"`
	IsPublic    bool                                            `json:"isPublic"`
	Tags        []string                                        `json:"tags,omitempty"`
	Components  map[enums.ComponentCategory]BuildComponentInput `json:"components" validate:"required"`
}

// BuildComponentDTO is one slot of a persisted build.
type BuildComponentDTO struct {
	Category  enums.ComponentCategory  `json:"category"`
	Quantity  int                      `json:"quantity"`
	Component *components.ComponentDTO `json:"component,omitempty"`
}

// BuildDTO is the transport shape of a persisted build.
type BuildDTO struct {
	ID          uuid.UUID           `json:"id"`
	UserID      uuid.UUID           `json:"userId"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	IsPublic    bool                `json:"isPublic"`
	TotalPrice  int                 `json:"totalPrice"`
	Tags        []string            `json:"tags"`
	Components  []BuildComponentDTO `json:"components"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ListResponse is the paginated builds payload.
type ListResponse struct {
	Builds []BuildDTO `json:"builds"`
	pagination.Page
}

func FromModel(m *models.Build) *BuildDTO {
	if m == nil {
		return nil
	}
	tags := append([]string(nil), []string(m.Tags)...)
	if tags == nil {
		tags = []string{}
	}

	slots := make([]BuildComponentDTO, 0, len(m.Components))
	for i := range m.Components {
		slot := BuildComponentDTO{
			Category: m.Components[i].Category,
			Quantity: m.Components[i].Quantity,
		}
		if m.Components[i].Component != nil {
			slot.Component = components.FromModel(m.Components[i].Component)
		}
		slots = append(slots, slot)
	}

	return &BuildDTO{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		IsPublic:    m.IsPublic,
		TotalPrice:  m.TotalPrice,
		Tags:        tags,
		Components:  slots,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
