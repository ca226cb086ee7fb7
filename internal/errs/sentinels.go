// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across api/store layers.
var (
	// ErrNotFound indicates the requested entity does not exist on the backend.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness conflict (e.g. conversation already created by another client).
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates failed authentication/authorization.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation indicates input rejected before or by the backend.
	ErrValidation = errors.New("validation failed")

	// ErrSessionExpired indicates the refresh token was rejected and the session was torn down.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoSession indicates no persisted tokens exist (login required).
	ErrNoSession = errors.New("no session (login required)")

	// ErrNetwork indicates the request never produced a response.
	ErrNetwork = errors.New("network error")
)
