// Package adapthttp implements the driving HTTP adapter: it routes
// requests to the application services and translates domain errors into
// status codes.
package adapthttp

import (
	"log/slog"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"

	"caltrack/internal/app"
	"caltrack/internal/lookup"
)

// OIDCConfig carries the optional single-sign-on wiring. Enabled is false
// when no issuer is configured.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	entries *app.EntryService
	days    *app.DayService
	goals   *app.GoalService
	authSvc *app.AuthService

	// lookup is nil when no API key is configured; the endpoint then
	// reports the feature as unavailable.
	lookup *lookup.Client

	oidcConfig  OIDCConfig
	disableAuth bool
	log         *slog.Logger
}

// New creates a Server wired to the given application services.
func New(es *app.EntryService, ds *app.DayService, gs *app.GoalService, as *app.AuthService, lc *lookup.Client, oc OIDCConfig, disableAuth bool, log *slog.Logger) *Server {
	return &Server{
		entries:     es,
		days:        ds,
		goals:       gs,
		authSvc:     as,
		lookup:      lc,
		oidcConfig:  oc,
		disableAuth: disableAuth,
		log:         log,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoverPanic)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})

		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)
		r.Post("/auth/setup", s.handleSetupUser)
		r.Get("/auth/config", s.handleConfig)
		r.Get("/auth/sso/login", s.handleSSOLogin)
		r.Get("/auth/sso/callback", s.handleSSOCallback)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Get("/day", s.handleDay)
			r.Get("/day/nav", s.handleDayNav)

			r.Post("/entries", s.handleAddEntry)
			r.Put("/entries/{id}", s.handleUpdateEntry)
			r.Delete("/entries/{id}", s.handleRemoveEntry)

			r.Get("/goal", s.handleGetGoal)
			r.Put("/goal", s.handleSetGoal)
			r.Post("/goal/recommend", s.handleRecommendGoal)
			r.Post("/goal/apply", s.handleApplyGoal)

			r.Get("/lookup", s.handleLookup)
		})
	})

	return withNoCache(r)
}
