package session

import (
	"fmt"
	"net/http"

	"estatecli/internal/errs"
)

// APIError is a non-2xx backend response. Message carries the backend's own
// wording when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

// Unwrap maps well-known statuses onto the shared sentinels so callers can
// switch on errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return errs.ErrUnauthorized
	case http.StatusNotFound:
		return errs.ErrNotFound
	case http.StatusConflict:
		return errs.ErrConflict
	case http.StatusBadRequest:
		return errs.ErrValidation
	}
	return nil
}

// DecodeError marks a 2xx response whose body did not match the expected
// shape. Malformed backend payloads fail loudly instead of leaking partial
// values into store state.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
