// Package router sets up all HTTP routes and middleware chains for the
// ContentPlan API. Routes are organized into auth, 2FA, and fully
// authenticated groups with the appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"contentplan/internal/handlers"
	"contentplan/internal/middleware"
	"contentplan/internal/session"
)

// Options carries the handler groups and cross-cutting settings the
// router wires together.
type Options struct {
	Sessions      *session.Store
	Auth          *handlers.Auth
	Themes        *handlers.Themes
	Suggestions   *handlers.Suggestions
	Settings      *handlers.Settings
	Organisations *handlers.Organisations
	SecureCookies bool

	// LoginLimiter throttles credential guessing on /api/login.
	// Optional; nil disables throttling (tests).
	LoginLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(opts.Sessions))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		// Auth — accessible without a session. Login is rate-limited to
		// slow down credential guessing.
		if opts.LoginLimiter != nil {
			r.With(opts.LoginLimiter.Middleware).Post("/login", opts.Auth.Login)
		} else {
			r.Post("/login", opts.Auth.Login)
		}
		r.Post("/logout", opts.Auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", opts.Auth.Me)
			r.Get("/2fa/setup", opts.Auth.TwoFASetup)
			r.Post("/2fa/verify", opts.Auth.TwoFAVerify)
		})

		// Authenticated + 2FA-verified API.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			// Organisation — admin only for updates.
			r.Get("/organisation", opts.Organisations.Get)
			r.With(middleware.RequireAdmin).Patch("/organisation", opts.Organisations.Update)

			r.Get("/websites", opts.Organisations.Websites)

			r.Route("/websites/{websiteID}", func(r chi.Router) {
				r.Get("/settings", opts.Settings.Get)
				r.Put("/settings", opts.Settings.Put)

				r.Route("/themes", func(r chi.Router) {
					r.Get("/", opts.Themes.List)
					r.Post("/", opts.Themes.Create)
					r.Get("/by-subject", opts.Themes.BySubject)
					r.Get("/next-date", opts.Themes.NextDate)
				})

				r.Route("/suggestions", func(r chi.Router) {
					r.Get("/", opts.Suggestions.List)
					r.Post("/", opts.Suggestions.Register)
				})
			})

			r.Route("/themes/{themeID}", func(r chi.Router) {
				r.Patch("/", opts.Themes.Update)
				r.Delete("/", opts.Themes.Delete)
			})

			r.Route("/suggestions/{suggestionID}", func(r chi.Router) {
				r.Post("/like", opts.Suggestions.Like)
				r.Post("/dislike", opts.Suggestions.Dislike)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
