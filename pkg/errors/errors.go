// ================== pkg/errors/errors.go =================
package errors

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal server error")
	ErrDuplicate    = errors.New("resource already exists")
	ErrValidation   = errors.New("validation failed")

	// Report lifecycle errors. ErrInvalidTransition also covers lost
	// update races: the precondition the caller checked is stale.
	ErrInvalidTransition = errors.New("invalid status transition")

	// Store-layer errors. Retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrStoreTimeout     = errors.New("store timeout")
)
