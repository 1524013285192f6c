package auth

import "errors"

var (
	// ErrFailedToAuthenticate is returned by Repository.SignIn when the provider
	// completed without error but produced no session. The message is part of the
	// public contract and is identical for every provider.
	ErrFailedToAuthenticate = errors.New("Failed to authenticate")

	ErrProviderRequired = errors.New("provider is required")
)

// IsAuthenticationFailure reports whether err is the uniform sign-in failure
// rather than a backend fault.
func IsAuthenticationFailure(err error) bool {
	return errors.Is(err, ErrFailedToAuthenticate)
}
