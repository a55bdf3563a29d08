package http

import (
	"github.com/go-verification-nosql/internal/application/user"
	"github.com/go-verification-nosql/internal/application/verification"
	"github.com/go-verification-nosql/internal/transport/http/middleware"
)

// Deps holds the application services and collaborators for the router.
type Deps struct {
	VerificationSvc verification.Service
	UserSvc         user.Service
	// Deliver hands a created verification link to the mailer. Nil makes
	// create requests fail with a configuration error.
	Deliver verification.DeliverFunc
	// Verifier enables service-token auth on every route but health checks.
	Verifier middleware.TokenVerifier
}
