// Package common defines shared constants and sentinel errors used across the
// layers of the password manager backend. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors. ErrorNotFound deliberately covers both a
	// genuinely missing record and a record owned by a different account,
	// so that probing ids cannot distinguish the two cases.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors, raised before any storage access.
	ErrorValidation = errors.New("validation error")

	// Auth/token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
