package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors used across services. Handlers translate them to HTTP
// status codes; everything else is treated as a dependency failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrDependency = errors.New("dependency failure")
)

// Validationf wraps ErrValidation with a message identifying the offending
// input.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// NotFoundf wraps ErrNotFound. Messages must not leak sensitive detail.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Forbiddenf wraps ErrForbidden.
func Forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrForbidden)...)
}

// Conflictf wraps ErrConflict (duplicate email, duplicate review, ...).
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

// Dependencyf wraps ErrDependency for database or broker failures.
func Dependencyf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrDependency)...)
}
