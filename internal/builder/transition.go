package builder

import (
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
)

// TransitionType tags a session transition.
type TransitionType string

const (
	TransitionSelectComponent   TransitionType = "select_component"
	TransitionDeselectComponent TransitionType = "deselect_component"
	TransitionSetBudget         TransitionType = "set_budget"
	TransitionResetBuild        TransitionType = "reset_build"
	TransitionSetSearchTerm     TransitionType = "set_search_term"
	TransitionSetActiveCategory TransitionType = "set_active_category"
	TransitionSetFilters        TransitionType = "set_filters"
	TransitionLogin             TransitionType = "login"
	TransitionLogout            TransitionType = "logout"
	TransitionSetCatalog        TransitionType = "set_catalog"
)

// Transition is one session mutation request. Only the fields relevant to its
// Type are consulted; the rest are ignored.
type Transition struct {
	Type       TransitionType          `json:"type"`
	Category   enums.ComponentCategory `json:"category,omitempty"`
	Component  *Component              `json:"component,omitempty"`
	Budget     *int                    `json:"budget,omitempty"`
	SearchTerm *string                 `json:"searchTerm,omitempty"`
	Filters    *FilterPatch            `json:"filters,omitempty"`
	User       *UserRef                `json:"user,omitempty"`
	Catalog    []Component             `json:"catalog,omitempty"`
}

// SelectComponent builds a transition placing the component in its category slot.
func SelectComponent(category enums.ComponentCategory, component Component) Transition {
	return Transition{Type: TransitionSelectComponent, Category: category, Component: &component}
}

// DeselectComponent builds a transition clearing the category slot.
func DeselectComponent(category enums.ComponentCategory) Transition {
	return Transition{Type: TransitionDeselectComponent, Category: category}
}

// SetBudget builds a transition replacing the session budget.
func SetBudget(amount int) Transition {
	return Transition{Type: TransitionSetBudget, Budget: &amount}
}

// ResetBuild builds a transition clearing every selected component.
func ResetBuild() Transition {
	return Transition{Type: TransitionResetBuild}
}

// SetSearchTerm builds a transition replacing the catalog search text.
func SetSearchTerm(text string) Transition {
	return Transition{Type: TransitionSetSearchTerm, SearchTerm: &text}
}

// SetActiveCategory builds a transition switching the browsed category.
func SetActiveCategory(category enums.ComponentCategory) Transition {
	return Transition{Type: TransitionSetActiveCategory, Category: category}
}

// SetFilters builds a transition shallow-merging the patch into the filters.
func SetFilters(patch FilterPatch) Transition {
	return Transition{Type: TransitionSetFilters, Filters: &patch}
}

// Login builds a transition attaching the authenticated user.
func Login(user UserRef) Transition {
	return Transition{Type: TransitionLogin, User: &user}
}

// Logout builds a transition clearing the session flags.
func Logout() Transition {
	return Transition{Type: TransitionLogout}
}

// SetCatalog builds a transition replacing the catalog snapshot.
func SetCatalog(components []Component) Transition {
	return Transition{Type: TransitionSetCatalog, Catalog: components}
}
