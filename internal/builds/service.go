package builds

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/aslanbekov/pcforge-backend/pkg/db/models"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
	pkgerrors "github.com/aslanbekov/pcforge-backend/pkg/errors"
	"github.com/aslanbekov/pcforge-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type buildRepository interface {
	Create(ctx context.Context, build *models.Build) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Build, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Build, int64, error)
	ListPublic(ctx context.Context, params pagination.Params) ([]models.Build, int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	ReplaceComponents(ctx context.Context, buildID uuid.UUID, slots []models.BuildComponent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type componentFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Component, error)
}

// Service exposes build persistence operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req SaveBuildRequest) (*BuildDTO, error)
	Get(ctx context.Context, requesterID *uuid.UUID, buildID uuid.UUID) (*BuildDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResponse, error)
	ListPublic(ctx context.Context, params pagination.Params) (*ListResponse, error)
	Update(ctx context.Context, userID, buildID uuid.UUID, req SaveBuildRequest) (*BuildDTO, error)
	Delete(ctx context.Context, userID, buildID uuid.UUID) error
	Copy(ctx context.Context, userID, buildID uuid.UUID) (*BuildDTO, error)
}

// ServiceParams bundles the dependencies required to build a builds service.
type ServiceParams struct {
	Repo       buildRepository
	Tx         txRunner
	Components componentFinder
	RepoForTx  func(tx *gorm.DB) buildRepository
}

type service struct {
	repo       buildRepository
	tx         txRunner
	components componentFinder
	repoForTx  func(tx *gorm.DB) buildRepository
}

// NewService constructs a builds service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("builds repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Components == nil {
		return nil, fmt.Errorf("component finder is required")
	}
	repoForTx := params.RepoForTx
	if repoForTx == nil {
		repoForTx = func(tx *gorm.DB) buildRepository {
			return NewRepository(tx)
		}
	}
	return &service{
		repo:       params.Repo,
		tx:         params.Tx,
		components: params.Components,
		repoForTx:  repoForTx,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req SaveBuildRequest) (*BuildDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	slots, totalPrice, err := s.resolveSlots(ctx, req.Components)
	if err != nil {
		return nil, err
	}

	build := &models.Build{
		UserID:      userID,
		Name:        name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		TotalPrice:  totalPrice,
		Tags:        normalizeTags(req.Tags),
		Components:  slots,
	}
	if err := s.repo.Create(ctx, build); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create build")
	}
	return s.Get(ctx, &userID, build.ID)
}

func (s *service) Get(ctx context.Context, requesterID *uuid.UUID, buildID uuid.UUID) (*BuildDTO, error) {
	build, err := s.find(ctx, buildID)
	if err != nil {
		return nil, err
	}
	if !build.IsPublic && (requesterID == nil || *requesterID != build.UserID) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "build not found")
	}
	return FromModel(build), nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResponse, error) {
	rows, total, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list builds")
	}
	return buildListResponse(rows, params, total), nil
}

func (s *service) ListPublic(ctx context.Context, params pagination.Params) (*ListResponse, error) {
	rows, total, err := s.repo.ListPublic(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list public builds")
	}
	return buildListResponse(rows, params, total), nil
}

func (s *service) Update(ctx context.Context, userID, buildID uuid.UUID, req SaveBuildRequest) (*BuildDTO, error) {
	build, err := s.find(ctx, buildID)
	if err != nil {
		return nil, err
	}
	if build.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "build belongs to another user")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	slots, totalPrice, err := s.resolveSlots(ctx, req.Components)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		slots[i].BuildID = buildID
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repoForTx(tx)
		if err := repo.UpdateFields(ctx, buildID, map[string]any{
			"name":        name,
			"description": req.Description,
			"is_public":   req.IsPublic,
			"total_price": totalPrice,
			"tags":        normalizeTags(req.Tags),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update build")
		}
		if err := repo.ReplaceComponents(ctx, buildID, slots); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace build components")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, &userID, buildID)
}

func (s *service) Delete(ctx context.Context, userID, buildID uuid.UUID) error {
	build, err := s.find(ctx, buildID)
	if err != nil {
		return err
	}
	if build.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "build belongs to another user")
	}
	if err := s.repo.Delete(ctx, buildID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete build")
	}
	return nil
}

// Copy duplicates a build the requester can read into a private build they own.
func (s *service) Copy(ctx context.Context, userID, buildID uuid.UUID) (*BuildDTO, error) {
	source, err := s.find(ctx, buildID)
	if err != nil {
		return nil, err
	}
	if !source.IsPublic && source.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "build not found")
	}

	slots := make([]models.BuildComponent, 0, len(source.Components))
	for _, slot := range source.Components {
		slots = append(slots, models.BuildComponent{
			ComponentID: slot.ComponentID,
			Category:    slot.Category,
			Quantity:    slot.Quantity,
		})
	}

	duplicate := &models.Build{
		UserID:      userID,
		Name:        source.Name + " (копия)",
		Description: source.Description,
		IsPublic:    false,
		TotalPrice:  source.TotalPrice,
		Tags:        append(pq.StringArray(nil), source.Tags...),
		Components:  slots,
	}
	if err := s.repo.Create(ctx, duplicate); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "copy build")
	}
	return s.Get(ctx, &userID, duplicate.ID)
}

// resolveSlots validates every selected component against the catalog and
// computes the authoritative total price.
func (s *service) resolveSlots(ctx context.Context, inputs map[enums.ComponentCategory]BuildComponentInput) ([]models.BuildComponent, int, error) {
	if len(inputs) == 0 {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "at least one component is required")
	}

	slots := make([]models.BuildComponent, 0, len(inputs))
	totalPrice := 0
	for category, input := range inputs {
		if !category.IsValid() {
			return nil, 0, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("unknown category %q", category))
		}

		component, err := s.components.FindByID(ctx, input.ComponentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("component %s not found", input.ComponentID))
			}
			return nil, 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup component")
		}
		if component.Category != category {
			return nil, 0, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("component %s belongs to category %q, not %q",
					input.ComponentID, component.Category, category))
		}

		quantity := input.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		totalPrice += component.Price * quantity
		slots = append(slots, models.BuildComponent{
			ComponentID: component.ID,
			Category:    category,
			Quantity:    quantity,
		})
	}
	return slots, totalPrice, nil
}

func (s *service) find(ctx context.Context, buildID uuid.UUID) (*models.Build, error) {
	build, err := s.repo.FindByID(ctx, buildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "build not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup build")
	}
	return build, nil
}

func buildListResponse(rows []models.Build, params pagination.Params, total int64) *ListResponse {
	dtos := make([]BuildDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &ListResponse{
		Builds: dtos,
		Page:   pagination.NewPage(params, total),
	}
}

func normalizeTags(tags []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
