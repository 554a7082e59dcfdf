package buildersession

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aslanbekov/pcforge-backend/internal/builder"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
	pkgerrors "github.com/aslanbekov/pcforge-backend/pkg/errors"
)

type stateStore interface {
	Load(ctx context.Context, userID uuid.UUID) (*builder.State, error)
	Save(ctx context.Context, userID uuid.UUID, state builder.State) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type catalogSource interface {
	Snapshot(ctx context.Context) ([]builder.Component, error)
	SnapshotByID(ctx context.Context, id uuid.UUID) (*builder.Component, error)
}

// TransitionInput is the wire form of a session transition. Select carries a
// component id that is resolved against the catalog before dispatch; the
// reducer itself only ever sees resolved data.
type TransitionInput struct {
	Type        builder.TransitionType  `json:"type" validate:"required"`
	Category    enums.ComponentCategory `json:"category,omitempty"`
	ComponentID *uuid.UUID              `json:"componentId,omitempty"`
	Budget      *int                    `json:"budget,omitempty"`
	SearchTerm  *string                 `json:"searchTerm,omitempty"`
	Filters     *builder.FilterPatch    `json:"filters,omitempty"`
}

// Session is the state plus everything derived from it.
type Session struct {
	State   builder.State   `json:"state"`
	Metrics builder.Metrics `json:"metrics"`
}

// Service exposes the per-user builder session operations.
type Service interface {
	Snapshot(ctx context.Context, user builder.UserRef) (*Session, error)
	Apply(ctx context.Context, user builder.UserRef, input TransitionInput) (*Session, error)
	Reset(ctx context.Context, user builder.UserRef) (*Session, error)
}

type service struct {
	store         stateStore
	catalog       catalogSource
	defaultBudget int
}

// NewService builds the builder session service. A non-positive defaultBudget
// falls back to the stock budget.
func NewService(store stateStore, catalog catalogSource, defaultBudget int) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog source is required")
	}
	if defaultBudget <= 0 {
		defaultBudget = builder.DefaultBudget
	}
	return &service{store: store, catalog: catalog, defaultBudget: defaultBudget}, nil
}

// Snapshot returns the user's current session, creating a fresh one on first use.
func (s *service) Snapshot(ctx context.Context, user builder.UserRef) (*Session, error) {
	state, err := s.loadOrInit(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.materialize(ctx, user, state, false)
}

// Apply dispatches one transition against the session and persists the result.
func (s *service) Apply(ctx context.Context, user builder.UserRef, input TransitionInput) (*Session, error) {
	transition, err := s.resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	state, err := s.loadOrInit(ctx, user)
	if err != nil {
		return nil, err
	}

	next, applied := builder.Apply(state, transition)
	if !applied {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("transition %q could not be applied", input.Type))
	}
	return s.materialize(ctx, user, next, true)
}

// Reset clears the selection and persists the emptied session.
func (s *service) Reset(ctx context.Context, user builder.UserRef) (*Session, error) {
	state, err := s.loadOrInit(ctx, user)
	if err != nil {
		return nil, err
	}
	next, _ := builder.Apply(state, builder.ResetBuild())
	return s.materialize(ctx, user, next, true)
}

// resolve maps a wire transition into a reducer transition, looking up the
// catalog row for selects. Session and catalog transitions are owned by the
// server, so the endpoint rejects them.
func (s *service) resolve(ctx context.Context, input TransitionInput) (builder.Transition, error) {
	switch input.Type {
	case builder.TransitionSelectComponent:
		if input.ComponentID == nil {
			return builder.Transition{}, pkgerrors.New(pkgerrors.CodeValidation, "componentId is required")
		}
		if !input.Category.IsValid() {
			return builder.Transition{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		component, err := s.catalog.SnapshotByID(ctx, *input.ComponentID)
		if err != nil {
			return builder.Transition{}, err
		}
		if component.Category != input.Category {
			return builder.Transition{}, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("component belongs to category %q, not %q", component.Category, input.Category))
		}
		return builder.SelectComponent(input.Category, *component), nil

	case builder.TransitionDeselectComponent:
		if !input.Category.IsValid() {
			return builder.Transition{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		return builder.DeselectComponent(input.Category), nil

	case builder.TransitionSetBudget:
		if input.Budget == nil {
			return builder.Transition{}, pkgerrors.New(pkgerrors.CodeValidation, "budget is required")
		}
		return builder.SetBudget(*input.Budget), nil

	case builder.TransitionResetBuild:
		return builder.ResetBuild(), nil

	case builder.TransitionSetSearchTerm:
		if input.SearchTerm == nil {
			return builder.Transition{}, pkgerrors.New(pkgerrors.CodeValidation, "searchTerm is required")
		}
		return builder.SetSearchTerm(*input.SearchTerm), nil

	case builder.TransitionSetActiveCategory:
		if !input.Category.IsValid() {
			return builder.Transition{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		return builder.SetActiveCategory(input.Category), nil

	case builder.TransitionSetFilters:
		if input.Filters == nil {
			return builder.Transition{}, pkgerrors.New(pkgerrors.CodeValidation, "filters is required")
		}
		return builder.SetFilters(*input.Filters), nil
	}

	return builder.Transition{}, pkgerrors.New(pkgerrors.CodeValidation,
		fmt.Sprintf("unsupported transition type %q", input.Type))
}

func (s *service) loadOrInit(ctx context.Context, user builder.UserRef) (builder.State, error) {
	stored, err := s.store.Load(ctx, user.ID)
	if err != nil {
		return builder.State{}, err
	}
	if stored != nil {
		state := *stored
		state, _ = builder.Apply(state, builder.Login(user))
		return state, nil
	}

	state := builder.NewState()
	state.Budget = s.defaultBudget
	state, _ = builder.Apply(state, builder.Login(user))
	return state, nil
}

// materialize hydrates the catalog snapshot, computes derived metrics, and
// optionally persists. The catalog is rehydrated per request rather than
// stored, so session blobs stay small and catalog edits show up immediately.
func (s *service) materialize(ctx context.Context, user builder.UserRef, state builder.State, persist bool) (*Session, error) {
	if persist {
		toPersist := state
		toPersist.Catalog = nil
		if err := s.store.Save(ctx, user.ID, toPersist); err != nil {
			return nil, err
		}
	}

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	state, _ = builder.Apply(state, builder.SetCatalog(catalog))

	return &Session{
		State:   state,
		Metrics: builder.ComputeMetrics(state),
	}, nil
}
