package auth

import (
	"context"

	"github.com/jrsteele09/go-signin/sessions"
	"github.com/rs/zerolog"
)

// Repository is the single entry point callers use to sign in. It owns exactly
// one Provider and turns the provider's "no session" outcome into
// ErrFailedToAuthenticate. Provider errors are returned unchanged.
type Repository struct {
	provider Provider
	logger   zerolog.Logger
}

// RepositoryOption defines a function type to modify the Repository instance.
type RepositoryOption func(*Repository)

// WithLogger sets the logger used to record sign-in outcomes at debug level.
func WithLogger(logger zerolog.Logger) RepositoryOption {
	return func(r *Repository) {
		r.logger = logger
	}
}

// NewRepository creates a Repository that delegates to provider.
func NewRepository(provider Provider, options ...RepositoryOption) (*Repository, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	r := &Repository{
		provider: provider,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// SignIn delegates to the provider and returns its session. A provider that
// completes without a session, or with a nil session pointer, results in
// ErrFailedToAuthenticate.
func (r *Repository) SignIn(ctx context.Context, email, password string) (sessions.Session, error) {
	session, err := r.provider.SignIn(ctx, email, password)
	if err != nil {
		r.logger.Debug().Err(err).Str("email", email).Msg("sign-in provider fault")
		return nil, err
	}

	if sessions.IsNil(session) {
		r.logger.Debug().Str("email", email).Msg("sign-in rejected")
		return nil, ErrFailedToAuthenticate
	}

	r.logger.Debug().Str("email", email).Str("kind", string(session.Kind())).Msg("sign-in succeeded")
	return session, nil
}
