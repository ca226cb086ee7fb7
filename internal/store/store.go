// Package store holds the per-domain state containers consumed by the UI.
// Each store owns one entity family, tracks loading/error flags around its
// async actions, and applies results through a generation counter so a stale
// response never overwrites a newer one.
//
// Read actions record their outcome in store state only; mutating actions
// additionally return the error so callers can give contextual feedback.
package store

import (
	"errors"

	"estatecli/internal/errs"
	"estatecli/internal/session"
)

// tracker coordinates loading/error flags and staleness. It is manipulated
// only under the owning store's lock.
type tracker struct {
	loading bool
	errMsg  string
	gen     uint64
}

// begin marks a new action: loading on, error cleared. The returned
// generation ticket must be presented when applying the result.
func (t *tracker) begin() uint64 {
	t.gen++
	t.loading = true
	t.errMsg = ""
	return t.gen
}

// current reports whether g is still the newest issued action.
func (t *tracker) current(g uint64) bool { return g == t.gen }

// succeed clears loading for the newest action; stale tickets are ignored.
func (t *tracker) succeed(g uint64) bool {
	if g != t.gen {
		return false
	}
	t.loading = false
	return true
}

// fail records the failure message for the newest action.
func (t *tracker) fail(g uint64, err error) bool {
	if g != t.gen {
		return false
	}
	t.loading = false
	t.errMsg = messageOf(err)
	return true
}

// Status is the loading/error snapshot every store exposes.
type Status struct {
	Loading bool
	Err     string
}

func (t *tracker) status() Status { return Status{Loading: t.loading, Err: t.errMsg} }

// messageOf turns an action error into the user-facing string kept in store
// state: the backend's own message when present, a generic fallback
// otherwise.
func messageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *session.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var decErr *session.DecodeError
	if errors.As(err, &decErr) {
		return "unexpected server response"
	}
	switch {
	case errors.Is(err, errs.ErrNetwork):
		return "network error, check your connection"
	case errors.Is(err, errs.ErrSessionExpired):
		return "session expired, please log in again"
	case errors.Is(err, errs.ErrValidation):
		return err.Error()
	}
	return "request failed"
}
