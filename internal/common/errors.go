// Package common defines shared constants and sentinel errors used across
// MediaKeeper layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Object publishing errors. ErrVisibilityChange means the object was
	// stored but could not be made public; the stored object is left behind.
	ErrStorageWrite     = errors.New("storage write error")
	ErrVisibilityChange = errors.New("visibility change error")
)
