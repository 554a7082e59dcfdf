package builder

import (
	"github.com/google/uuid"

	"github.com/aslanbekov/pcforge-backend/pkg/enums"
)

// DefaultBudget is the starting budget for a fresh session, in tenge.
const DefaultBudget = 2_000_000

// UserRef identifies the authenticated user attached to a session.
type UserRef struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// Filters holds the catalog view predicates and ordering.
type Filters struct {
	SortBy       enums.SortKey        `json:"sortBy"`
	SortOrder    enums.SortOrder      `json:"sortOrder"`
	Brands       []string             `json:"brands,omitempty"`
	PriceRange   *[2]int              `json:"priceRange,omitempty"`
	MinRating    float64              `json:"minRating,omitempty"`
	Availability []enums.Availability `json:"availability,omitempty"`
}

// FilterPatch is a partial Filters update. Nil fields are left untouched,
// matching shallow-merge semantics.
type FilterPatch struct {
	SortBy       *enums.SortKey        `json:"sortBy,omitempty"`
	SortOrder    *enums.SortOrder      `json:"sortOrder,omitempty"`
	Brands       *[]string             `json:"brands,omitempty"`
	PriceRange   *[2]int               `json:"priceRange,omitempty"`
	MinRating    *float64              `json:"minRating,omitempty"`
	Availability *[]enums.Availability `json:"availability,omitempty"`
}

// DefaultFilters returns the catalog ordering a fresh session starts with.
func DefaultFilters() Filters {
	return Filters{
		SortBy:    enums.SortByPopularity,
		SortOrder: enums.SortDesc,
	}
}

// State is one user's build-configuration session. It is treated as an
// immutable value: Apply returns a new State and never mutates the receiver's
// maps or slices in place.
type State struct {
	Selected       map[enums.ComponentCategory]Component `json:"selectedComponents"`
	Budget         int                                   `json:"budget"`
	Filters        Filters                               `json:"filters"`
	SearchTerm     string                                `json:"searchTerm"`
	ActiveCategory enums.ComponentCategory               `json:"activeCategory"`
	LoggedIn       bool                                  `json:"isLoggedIn"`
	User           *UserRef                              `json:"user,omitempty"`
	Catalog        []Component                           `json:"catalog,omitempty"`
}

// NewState returns the empty session every user starts from.
func NewState() State {
	return State{
		Selected:       map[enums.ComponentCategory]Component{},
		Budget:         DefaultBudget,
		Filters:        DefaultFilters(),
		ActiveCategory: enums.CategoryCPU,
	}
}

func (s State) cloneSelected() map[enums.ComponentCategory]Component {
	out := make(map[enums.ComponentCategory]Component, len(s.Selected))
	for category, component := range s.Selected {
		out[category] = component
	}
	return out
}
