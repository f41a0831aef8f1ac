package domain

import "errors"

// Domain errors (no external dependencies). The HTTP layer maps these to
// status codes; adapters wrap low-level errors into them.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicate           = errors.New("duplicate resource")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("access denied")
	ErrConflict            = errors.New("conflict with current state")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrUnsupportedMovement = errors.New("unsupported movement type")
	ErrServiceUnavailable  = errors.New("external service unavailable")
)
