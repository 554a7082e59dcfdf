package components

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aslanbekov/pcforge-backend/internal/builder"
	"github.com/aslanbekov/pcforge-backend/pkg/db/models"
	pkgerrors "github.com/aslanbekov/pcforge-backend/pkg/errors"
	"github.com/aslanbekov/pcforge-backend/pkg/pagination"
)

type componentRepository interface {
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Component, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Component, error)
	ListAll(ctx context.Context) ([]models.Component, error)
}

// Service exposes catalog read operations, including the snapshot surface the
// builder session feeds from.
type Service interface {
	List(ctx context.Context, filters ListFilters, params pagination.Params) (*ListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*ComponentDTO, error)
	Snapshot(ctx context.Context) ([]builder.Component, error)
	SnapshotByID(ctx context.Context, id uuid.UUID) (*builder.Component, error)
}

type service struct {
	repo componentRepository
}

// NewService constructs a catalog service backed by the provided repo.
func NewService(repo componentRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("components repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters, params pagination.Params) (*ListResponse, error) {
	rows, total, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list components")
	}

	dtos := make([]ComponentDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &ListResponse{
		Components: dtos,
		Page:       pagination.NewPage(params, total),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ComponentDTO, error) {
	component, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(component), nil
}

func (s *service) Snapshot(ctx context.Context) ([]builder.Component, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load catalog snapshot")
	}
	snapshot := make([]builder.Component, 0, len(rows))
	for i := range rows {
		snapshot = append(snapshot, builder.FromModel(&rows[i]))
	}
	return snapshot, nil
}

func (s *service) SnapshotByID(ctx context.Context, id uuid.UUID) (*builder.Component, error) {
	component, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := builder.FromModel(component)
	return &snapshot, nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	component, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "component not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup component")
	}
	return component, nil
}
