package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-verification-nosql/internal/config"
	"github.com/go-verification-nosql/internal/transport/http/handler"
	appmiddleware "github.com/go-verification-nosql/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the adapter router. ctx bounds the lifetime of
// background work such as rate-limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.Verifier != nil {
		authMw = appmiddleware.Auth(deps.Verifier)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	issueRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	healthH := handler.NewHealthHandler()
	verificationH := handler.NewVerificationHandler(deps.VerificationSvc, handler.VerificationOptions{
		MaxAge:      cfg.VerificationMaxAge,
		BaseURL:     cfg.BaseURL,
		ExposeToken: !cfg.IsProduction(),
		Deliver:     deps.Deliver,
	})
	userH := handler.NewUserHandler(deps.UserSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.With(issueRL.Limit).Post("/verification-requests", verificationH.Create)
			r.Post("/verification-requests/verify", verificationH.Verify)
			r.Delete("/verification-requests/{email}", verificationH.Delete)

			r.Post("/users", userH.Create)
			r.Get("/users", userH.GetByEmail)
			r.Get("/users/{id}", userH.Get)
			r.Patch("/users/{id}", userH.Update)
		})
	})

	return r
}
