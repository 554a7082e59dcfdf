package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aslanbekov/pcforge-backend/api/responses"
	"github.com/aslanbekov/pcforge-backend/api/validators"
	componentsvc "github.com/aslanbekov/pcforge-backend/internal/components"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
	pkgerrors "github.com/aslanbekov/pcforge-backend/pkg/errors"
	"github.com/aslanbekov/pcforge-backend/pkg/logger"
)

const maxComponentPrice = 100_000_000

// ListComponents serves the filtered, sorted, paginated catalog.
func ListComponents(svc componentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filters, err := parseCatalogFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.List(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// GetComponent serves a single catalog row by id.
func GetComponent(svc componentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := parsePathID(r, "componentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		component, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, component)
	}
}

func parseCatalogFilters(r *http.Request) (componentsvc.ListFilters, error) {
	filters := componentsvc.ListFilters{
		Search: validators.SanitizeString(r.URL.Query().Get("search"), 120),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, err := enums.ParseComponentCategory(raw)
		if err != nil {
			return componentsvc.ListFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		filters.Category = &category
	}

	if raw := validators.SanitizeString(r.URL.Query().Get("brand"), 80); raw != "" {
		filters.Brand = &raw
	}

	minPrice, err := validators.ParseQueryIntPtr(r, "minPrice", 0, maxComponentPrice)
	if err != nil {
		return componentsvc.ListFilters{}, err
	}
	filters.MinPrice = minPrice

	maxPrice, err := validators.ParseQueryIntPtr(r, "maxPrice", 0, maxComponentPrice)
	if err != nil {
		return componentsvc.ListFilters{}, err
	}
	filters.MaxPrice = maxPrice

	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return componentsvc.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "minPrice exceeds maxPrice")
	}

	inStock, err := validators.ParseQueryBoolPtr(r, "inStock")
	if err != nil {
		return componentsvc.ListFilters{}, err
	}
	filters.InStock = inStock

	if raw := strings.TrimSpace(r.URL.Query().Get("sortBy")); raw != "" {
		sortBy, err := enums.ParseSortKey(raw)
		if err != nil {
			return componentsvc.ListFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sortBy")
		}
		filters.SortBy = sortBy
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("sortOrder")); raw != "" {
		sortOrder, err := enums.ParseSortOrder(raw)
		if err != nil {
			return componentsvc.ListFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sortOrder")
		}
		filters.SortOrder = sortOrder
	}

	return filters, nil
}

func parsePathID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id").WithDetails(map[string]any{"field": param})
	}
	return id, nil
}
