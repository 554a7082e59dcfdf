package controllers

import (
	"net/http"

	"github.com/aslanbekov/pcforge-backend/api/responses"
	"github.com/aslanbekov/pcforge-backend/api/validators"
	authsvc "github.com/aslanbekov/pcforge-backend/internal/auth"
	"github.com/aslanbekov/pcforge-backend/internal/builder"
	sessionsvc "github.com/aslanbekov/pcforge-backend/internal/buildersession"
	pkgerrors "github.com/aslanbekov/pcforge-backend/pkg/errors"
	"github.com/aslanbekov/pcforge-backend/pkg/logger"
)

// GetBuilderSession serves the current state and derived metrics.
func GetBuilderSession(svc sessionsvc.Service, users authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "builder service unavailable"))
			return
		}
		user, err := resolveBuilderUser(r, users)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Snapshot(r.Context(), user)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// ApplyBuilderTransition applies one transition and returns the new state.
func ApplyBuilderTransition(svc sessionsvc.Service, users authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "builder service unavailable"))
			return
		}
		user, err := resolveBuilderUser(r, users)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body sessionsvc.TransitionInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Apply(r.Context(), user, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// ResetBuilderSession clears the selection and returns the fresh state.
func ResetBuilderSession(svc sessionsvc.Service, users authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "builder service unavailable"))
			return
		}
		user, err := resolveBuilderUser(r, users)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Reset(r.Context(), user)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

func resolveBuilderUser(r *http.Request, users authsvc.Service) (builder.UserRef, error) {
	if users == nil {
		return builder.UserRef{}, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
	}
	userID, err := requireUserID(r)
	if err != nil {
		return builder.UserRef{}, err
	}
	profile, err := users.Me(r.Context(), userID)
	if err != nil {
		return builder.UserRef{}, err
	}
	return builder.UserRef{
		ID:       profile.ID,
		Username: profile.Username,
		Email:    profile.Email,
	}, nil
}
