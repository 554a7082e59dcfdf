package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aslanbekov/pcforge-backend/pkg/db/models"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
	"github.com/aslanbekov/pcforge-backend/pkg/pagination"
)

// Repository exposes catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a components repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of catalog rows matching the filters plus the total
// matching count.
func (r *Repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Component, int64, error) {
	params = pagination.Normalize(params)

	qb := r.db.WithContext(ctx).Model(&models.Component{})
	qb = applyFilters(qb, filters)

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Component
	err := qb.
		Order(orderClause(filters)).
		Order("created_at ASC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID loads one catalog row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	var component models.Component
	if err := r.db.WithContext(ctx).First(&component, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &component, nil
}

// ListAll returns the full catalog ordered by category then popularity, used
// to hydrate builder sessions.
func (r *Repository) ListAll(ctx context.Context) ([]models.Component, error) {
	var rows []models.Component
	err := r.db.WithContext(ctx).
		Order("category ASC").
		Order("popularity DESC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func applyFilters(qb *gorm.DB, filters ListFilters) *gorm.DB {
	if search := strings.TrimSpace(filters.Search); search != "" {
		qb = qb.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if filters.Category != nil {
		qb = qb.Where("category = ?", *filters.Category)
	}
	if filters.Brand != nil && *filters.Brand != "" {
		qb = qb.Where("brand = ?", *filters.Brand)
	}
	if filters.MinPrice != nil {
		qb = qb.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		qb = qb.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.InStock != nil {
		if *filters.InStock {
			qb = qb.Where("availability = ?", enums.AvailabilityInStock)
		} else {
			qb = qb.Where("availability <> ?", enums.AvailabilityInStock)
		}
	}
	return qb
}

func orderClause(filters ListFilters) string {
	column := "popularity"
	switch filters.SortBy {
	case enums.SortByPrice:
		column = "price"
	case enums.SortByRating:
		column = "rating"
	case enums.SortByName:
		column = "name"
	case enums.SortByPopularity:
		column = "popularity"
	}

	direction := "DESC"
	if filters.SortOrder == enums.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}
