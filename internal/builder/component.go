package builder

import (
	"github.com/google/uuid"

	"github.com/aslanbekov/pcforge-backend/pkg/db/models"
	dbtypes "github.com/aslanbekov/pcforge-backend/pkg/db/types"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
)

// Component is the catalog snapshot the builder state works with. It carries
// just enough of the catalog row to price, sort, and analyze a selection.
type Component struct {
	ID           uuid.UUID               `json:"id"`
	Name         string                  `json:"name"`
	Brand        string                  `json:"brand"`
	Category     enums.ComponentCategory `json:"category"`
	Price        int                     `json:"price"`
	Rating       float64                 `json:"rating"`
	Availability enums.Availability      `json:"availability"`
	Specs        dbtypes.SpecMap         `json:"specs,omitempty"`
	Popularity   int                     `json:"popularity"`
}

// FromModel projects a persisted catalog row into a builder snapshot.
func FromModel(m *models.Component) Component {
	return Component{
		ID:           m.ID,
		Name:         m.Name,
		Brand:        m.Brand,
		Category:     m.Category,
		Price:        m.Price,
		Rating:       m.Rating,
		Availability: m.Availability,
		Specs:        m.Specs,
		Popularity:   m.Popularity,
	}
}

// power returns the parsed watt draw from specs, falling back as the
// compatibility rules require (0 for most parts, 65 for a CPU without data).
func (c Component) power(fallback int) int {
	if c.Specs == nil {
		return fallback
	}
	return c.Specs.Int("power", fallback)
}
