package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aslanbekov/pcforge-backend/api/controllers"
	"github.com/aslanbekov/pcforge-backend/api/middleware"
	authsvc "github.com/aslanbekov/pcforge-backend/internal/auth"
	sessionsvc "github.com/aslanbekov/pcforge-backend/internal/buildersession"
	buildsvc "github.com/aslanbekov/pcforge-backend/internal/builds"
	componentsvc "github.com/aslanbekov/pcforge-backend/internal/components"
	"github.com/aslanbekov/pcforge-backend/pkg/auth/session"
	"github.com/aslanbekov/pcforge-backend/pkg/config"
	"github.com/aslanbekov/pcforge-backend/pkg/logger"
	"github.com/aslanbekov/pcforge-backend/pkg/metrics"
	redisclient "github.com/aslanbekov/pcforge-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              pinger
	Redis           *redisclient.Client
	SessionManager  session.AccessSessionChecker
	AuthService     authsvc.Service
	RegisterService authsvc.RegisterService
	Components      componentsvc.Service
	Builds          buildsvc.Service
	BuilderSessions sessionsvc.Service
	Metrics         *metrics.HTTPMetrics
	PromRegistry    *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	// deps.Redis is a concrete pointer; wrap it only when present so the
	// interface stays nil-checkable downstream.
	var cache pinger
	if deps.Redis != nil {
		cache = deps.Redis
	}
	authLimit := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if deps.Redis == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, deps.Redis, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.Health(cfg, deps.DB, logg))
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, cache, logg))
	})

	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(authLimit(registerPolicy)).
			Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.With(authLimit(loginPolicy)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
			r.Get("/me", controllers.AuthMe(deps.AuthService, logg))
			r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
		})
	})

	r.Route("/api/v1/components", func(r chi.Router) {
		r.Get("/", controllers.ListComponents(deps.Components, logg))
		r.Get("/{componentID}", controllers.GetComponent(deps.Components, logg))
	})

	r.Route("/api/v1/builds", func(r chi.Router) {
		r.Get("/public", controllers.ListPublicBuilds(deps.Builds, logg))
		r.With(middleware.OptionalAuth(cfg.JWT, deps.SessionManager)).
			Get("/{buildID}", controllers.GetBuild(deps.Builds, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
			r.Post("/", controllers.CreateBuild(deps.Builds, logg))
			r.Get("/my", controllers.ListMyBuilds(deps.Builds, logg))
			r.Put("/{buildID}", controllers.UpdateBuild(deps.Builds, logg))
			r.Delete("/{buildID}", controllers.DeleteBuild(deps.Builds, logg))
			r.Post("/{buildID}/copy", controllers.CopyBuild(deps.Builds, logg))
		})
	})

	r.Route("/api/v1/builder", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Get("/", controllers.GetBuilderSession(deps.BuilderSessions, deps.AuthService, logg))
		r.Post("/transitions", controllers.ApplyBuilderTransition(deps.BuilderSessions, deps.AuthService, logg))
		r.Post("/reset", controllers.ResetBuilderSession(deps.BuilderSessions, deps.AuthService, logg))
	})

	return r
}
