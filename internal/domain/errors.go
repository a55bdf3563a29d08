package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")

	// ErrConfiguration is returned before any I/O when a required table name is unset.
	ErrConfiguration = errors.New("configuration error")

	ErrTokenExpiredFormat = errors.New("token expiration is not a valid timestamp")
	ErrTokenExpired       = errors.New("invalid token expiration date, request new verification email")
	ErrTokenInvalid       = errors.New("invalid token signature")
)
