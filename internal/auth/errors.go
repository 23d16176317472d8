package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every error returned by this package matches exactly one of
// these under errors.Is.
var (
	ErrValidation             = errors.New("validation error")
	ErrConflict               = errors.New("conflict")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAuthorizationDenied    = errors.New("authorization denied")
	ErrInternal               = errors.New("internal error")
)

// Validation details, each wrapping ErrValidation.
var (
	ErrMissingFields   = fmt.Errorf("%w: username and password are required", ErrValidation)
	ErrInvalidRole     = fmt.Errorf("%w: unknown role", ErrValidation)
	ErrInvalidUsername = fmt.Errorf("%w: username is too long or contains a NUL byte", ErrValidation)
	ErrPasswordTooLong = fmt.Errorf("%w: password is too long", ErrValidation)
)

// StatusFor maps an error from this package onto the HTTP status and the
// public message sent in the {"error": ...} body. Unknown errors are 500.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissingFields):
		return http.StatusBadRequest, "Username and password required"
	case errors.Is(err, ErrInvalidRole):
		return http.StatusBadRequest, "Invalid role"
	case errors.Is(err, ErrInvalidUsername):
		return http.StatusBadRequest, "Invalid username"
	case errors.Is(err, ErrPasswordTooLong):
		return http.StatusBadRequest, "Password too long"
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, ErrConflict):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, ErrAuthenticationRequired):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, ErrAuthorizationDenied):
		return http.StatusForbidden, "Admin access required"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
