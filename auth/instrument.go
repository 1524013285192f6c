package auth

import (
	"context"
	"time"

	"github.com/jrsteele09/go-signin/internal/metrics"
	"github.com/jrsteele09/go-signin/sessions"
	"github.com/rs/zerolog"
)

type instrumentedProvider struct {
	name     string
	provider Provider
	logger   zerolog.Logger
}

// Instrument wraps provider so that every attempt is logged and counted under
// name. Results pass through untouched.
func Instrument(name string, provider Provider, logger zerolog.Logger) Provider {
	return &instrumentedProvider{
		name:     name,
		provider: provider,
		logger:   logger.With().Str("provider", name).Logger(),
	}
}

func (ip *instrumentedProvider) SignIn(ctx context.Context, email, password string) (sessions.Session, error) {
	start := time.Now()
	session, err := ip.provider.SignIn(ctx, email, password)
	elapsed := time.Since(start)

	metrics.SignInDuration.WithLabelValues(ip.name).Observe(elapsed.Seconds())

	outcome := metrics.OutcomeSuccess
	switch {
	case err != nil:
		outcome = metrics.OutcomeFault
		ip.logger.Warn().Err(err).Dur("elapsed", elapsed).Msg("identity backend fault")
	case sessions.IsNil(session):
		outcome = metrics.OutcomeNoSession
		ip.logger.Info().Dur("elapsed", elapsed).Msg("credentials rejected")
	default:
		ip.logger.Info().Str("kind", string(session.Kind())).Dur("elapsed", elapsed).Msg("signed in")
	}
	metrics.SignInAttemptsTotal.WithLabelValues(ip.name, outcome).Inc()

	return session, err
}
