package builds

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aslanbekov/pcforge-backend/pkg/db/models"
	"github.com/aslanbekov/pcforge-backend/pkg/pagination"
)

// Repository exposes build persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a builds repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the build together with its component slots.
func (r *Repository) Create(ctx context.Context, build *models.Build) error {
	return r.db.WithContext(ctx).Create(build).Error
}

// FindByID loads a build including its slots and their catalog rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Build, error) {
	var build models.Build
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("category ASC")
		}).
		Preload("Components.Component").
		First(&build, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &build, nil
}

// ListByUser returns one page of the user's builds, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Build, int64, error) {
	return r.list(ctx, params, "user_id = ?", userID)
}

// ListPublic returns one page of builds shared publicly, newest first.
func (r *Repository) ListPublic(ctx context.Context, params pagination.Params) ([]models.Build, int64, error) {
	return r.list(ctx, params, "is_public = ?", true)
}

func (r *Repository) list(ctx context.Context, params pagination.Params, condition string, args ...any) ([]models.Build, int64, error) {
	params = pagination.Normalize(params)

	qb := r.db.WithContext(ctx).Model(&models.Build{}).Where(condition, args...)

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Build
	err := qb.
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("category ASC")
		}).
		Preload("Components.Component").
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateFields applies the build-level column changes.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Build{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// ReplaceComponents swaps every slot of the build for the provided set.
func (r *Repository) ReplaceComponents(ctx context.Context, buildID uuid.UUID, slots []models.BuildComponent) error {
	if err := r.db.WithContext(ctx).
		Where("build_id = ?", buildID).
		Delete(&models.BuildComponent{}).Error; err != nil {
		return err
	}
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&slots).Error
}

// Delete removes the build; slots cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Select("Components").
		Delete(&models.Build{ID: id}).Error
}
