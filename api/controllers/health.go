package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/aslanbekov/pcforge-backend/api/responses"
	"github.com/aslanbekov/pcforge-backend/pkg/config"
	pkgerrors "github.com/aslanbekov/pcforge-backend/pkg/errors"
	"github.com/aslanbekov/pcforge-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Health is the probe the frontend polls: process status plus whether the
// database answers a ping. A dead database degrades the payload but keeps
// the endpoint at 200, the process itself is still up.
func Health(cfg *config.Config, database pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PCForge-Env", cfg.App.Env)

		status := "ok"
		db := "connected"
		if database == nil {
			status = "degraded"
			db = "disconnected"
		} else if err := database.Ping(r.Context()); err != nil {
			status = "degraded"
			db = "disconnected"
			if logg != nil {
				logg.Error(r.Context(), "health.database", err)
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": status, "database": db})
	}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PCForge-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the backing stores are reachable.
func HealthReady(cfg *config.Config, database, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PCForge-Env", cfg.App.Env)

		var err error
		if database != nil {
			if pingErr := database.Ping(r.Context()); pingErr != nil {
				err = multierr.Append(err, pingErr)
			}
		}
		if cache != nil {
			if pingErr := cache.Ping(r.Context()); pingErr != nil {
				err = multierr.Append(err, pingErr)
			}
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency check"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
