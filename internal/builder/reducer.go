package builder

import "github.com/aslanbekov/pcforge-backend/pkg/enums"

// Apply runs one transition against the state and returns the resulting state.
// It is total: it never fails and never touches anything outside its inputs.
// The second return reports whether the transition was recognized and well
// formed; a false return always carries the input state unchanged, so callers
// may ignore it and keep the original fail-silent behavior, or surface it.
func Apply(state State, transition Transition) (State, bool) {
	switch transition.Type {
	case TransitionSelectComponent:
		if transition.Component == nil || !transition.Category.IsValid() {
			return state, false
		}
		if transition.Component.Category != transition.Category {
			return state, false
		}
		selected := state.cloneSelected()
		selected[transition.Category] = *transition.Component
		state.Selected = selected
		return state, true

	case TransitionDeselectComponent:
		if !transition.Category.IsValid() {
			return state, false
		}
		if _, ok := state.Selected[transition.Category]; !ok {
			return state, true
		}
		selected := state.cloneSelected()
		delete(selected, transition.Category)
		state.Selected = selected
		return state, true

	case TransitionSetBudget:
		if transition.Budget == nil {
			return state, false
		}
		state.Budget = *transition.Budget
		return state, true

	case TransitionResetBuild:
		state.Selected = map[enums.ComponentCategory]Component{}
		return state, true

	case TransitionSetSearchTerm:
		if transition.SearchTerm == nil {
			return state, false
		}
		state.SearchTerm = *transition.SearchTerm
		return state, true

	case TransitionSetActiveCategory:
		if !transition.Category.IsValid() {
			return state, false
		}
		state.ActiveCategory = transition.Category
		return state, true

	case TransitionSetFilters:
		if transition.Filters == nil {
			return state, false
		}
		state.Filters = mergeFilters(state.Filters, *transition.Filters)
		return state, true

	case TransitionLogin:
		if transition.User == nil {
			return state, false
		}
		user := *transition.User
		state.LoggedIn = true
		state.User = &user
		return state, true

	case TransitionLogout:
		state.LoggedIn = false
		state.User = nil
		return state, true

	case TransitionSetCatalog:
		catalog := make([]Component, len(transition.Catalog))
		copy(catalog, transition.Catalog)
		state.Catalog = catalog
		return state, true
	}

	return state, false
}

func mergeFilters(current Filters, patch FilterPatch) Filters {
	if patch.SortBy != nil {
		current.SortBy = *patch.SortBy
	}
	if patch.SortOrder != nil {
		current.SortOrder = *patch.SortOrder
	}
	if patch.Brands != nil {
		current.Brands = *patch.Brands
	}
	if patch.PriceRange != nil {
		priceRange := *patch.PriceRange
		current.PriceRange = &priceRange
	}
	if patch.MinRating != nil {
		current.MinRating = *patch.MinRating
	}
	if patch.Availability != nil {
		current.Availability = *patch.Availability
	}
	return current
}
