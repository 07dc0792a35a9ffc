package valueobject

import "errors"

// Invalid-input errors. Callers surface these as validation failures.
var (
	ErrInvalidDuration  = errors.New("loan duration in days must be positive")
	ErrInvalidTenor     = errors.New("tenor must be positive")
	ErrInvalidPrincipal = errors.New("principal must be positive")
	ErrInvalidRate      = errors.New("rate out of range")
	ErrInvalidConfig    = errors.New("invalid pricing configuration")
	ErrInvalidRequest   = errors.New("invalid request")
)

// ErrNotFound is returned by collaborator lookups when no row matches.
var ErrNotFound = errors.New("not found")
