package service

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("user already exists")
	ErrInvalidToken    = errors.New("invalid token")
	ErrUnknownUser     = errors.New("user not registered")
	ErrWrongPassword   = errors.New("incorrect password")
	ErrWeakPassword    = errors.New("password does not satisfy policy")
	ErrImmutableField  = errors.New("field cannot be changed here")
	ErrUnknownCountry  = errors.New("country not found")
	ErrInvalidPage     = errors.New("invalid limit or offset")
	ErrTooManyAttempts = errors.New("too many sign-in attempts")
)

// ErrNotFound is returned both for missing resources and for resources the
// viewer may not see. Callers must not distinguish the two.
var ErrNotFound = errors.New("not found")
