package errors

import (
	"errors"
	"fmt"
)

// Common error types shared by the providers and their wiring
var (
	// Configuration errors
	ErrMissingConfig       = errors.New("missing configuration")
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// User store errors
	ErrUserNotFound = errors.New("user not found")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Missing returns ErrMissingConfig annotated with the names of the unset settings.
func Missing(settings ...string) error {
	return fmt.Errorf("%w: %v", ErrMissingConfig, settings)
}
