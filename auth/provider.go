package auth

import (
	"context"

	"github.com/jrsteele09/go-signin/sessions"
)

// Provider signs a user in against one identity backend.
//
// Implementations must honour three outcomes:
//   - (session, nil): the backend accepted the credentials
//   - (nil, nil): the call completed but no session resulted (wrong password,
//     unknown user, challenge required); this is not an error
//   - (nil, err): the backend call itself failed; err is returned as the backend
//     produced it
//
// Sessions should be returned as values. A nil session pointer is treated as
// no session. Providers keep no per-call state and may be called concurrently.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (sessions.Session, error)
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func(ctx context.Context, email, password string) (sessions.Session, error)

func (f ProviderFunc) SignIn(ctx context.Context, email, password string) (sessions.Session, error) {
	return f(ctx, email, password)
}
