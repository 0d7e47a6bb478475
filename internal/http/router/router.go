// Package router wires the HTTP surface: routes, gates and the
// middleware chain.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gulcan00/blog-api/internal/auth"
	authctrl "github.com/Gulcan00/blog-api/internal/http/controllers/auth"
	blogctrl "github.com/Gulcan00/blog-api/internal/http/controllers/blog"
	healthctrl "github.com/Gulcan00/blog-api/internal/http/controllers/health"
	httperrors "github.com/Gulcan00/blog-api/internal/http/errors"
	"github.com/Gulcan00/blog-api/internal/http/metrics"
	"github.com/Gulcan00/blog-api/internal/http/middlewares"
	"github.com/Gulcan00/blog-api/internal/rate"
	"github.com/Gulcan00/blog-api/internal/store"
	"github.com/Gulcan00/blog-api/internal/token"
)

// Deps contains everything the router mounts.
type Deps struct {
	Auth    *authctrl.Controllers
	Blog    *blogctrl.Controllers
	Health  *healthctrl.Controller
	Metrics http.Handler

	Issuer   *token.Issuer
	Resolver *auth.Resolver
	Limiter  rate.Limiter
}

// New builds the chi router with the full route table.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	requireAuth := middlewares.RequireAuth(d.Issuer, d.Resolver)
	requireAuthor := middlewares.RequireRole(store.RoleAuthor)
	rateLimit := middlewares.WithRateLimit(d.Limiter)

	r.Get("/healthz", d.Health.Healthz)
	r.Get("/readyz", d.Health.Readyz)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Credential endpoints are the brute-force targets.
			r.With(rateLimit).Post("/register", d.Auth.Register.Register)
			r.With(rateLimit).Post("/login", d.Auth.Login.Login)
			r.With(requireAuth).Get("/me", d.Auth.Me.Me)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", d.Blog.Posts.List)
			r.Get("/{id}", d.Blog.Posts.Get)
			r.With(requireAuth, requireAuthor).Post("/", d.Blog.Posts.Create)
			r.With(requireAuth, requireAuthor).Put("/{id}", d.Blog.Posts.Update)
			r.With(requireAuth, requireAuthor).Delete("/{id}", d.Blog.Posts.Delete)

			// Comments nest under their post; any authenticated role
			// may comment.
			r.Get("/{id}/comments", d.Blog.Comments.ListByPost)
			r.With(requireAuth).Post("/{id}/comments", d.Blog.Comments.Create)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{id}", d.Blog.Comments.Get)
			r.With(requireAuth).Delete("/{id}", d.Blog.Comments.Delete)
		})
	})

	// The outer chain wraps everything, the 404 handler included, so
	// every response is logged and counted.
	return middlewares.Chain(r,
		middlewares.WithRequestID(),
		middlewares.WithLogging(),
		middlewares.WithRecover(),
		metrics.WithMetrics,
	)
}
