// Package bootstrap turns configuration into a ready to use sign-in provider.
package bootstrap

import (
	"context"
	"sort"

	"github.com/jrsteele09/go-signin/auth"
	"github.com/jrsteele09/go-signin/internal/config"
	apperrors "github.com/jrsteele09/go-signin/internal/errors"
	"github.com/jrsteele09/go-signin/providers/cognito"
	"github.com/jrsteele09/go-signin/providers/firebase"
	"github.com/jrsteele09/go-signin/providers/ldap"
	"github.com/jrsteele09/go-signin/providers/local"
	"github.com/jrsteele09/go-signin/providers/oidc"
	"github.com/jrsteele09/go-signin/token/jwt"
	"github.com/jrsteele09/go-signin/token/keys"
	"github.com/jrsteele09/go-signin/users"
	"github.com/rs/zerolog"
)

// Provider names accepted in AUTH_PROVIDER.
const (
	ProviderLocal    = "local"
	ProviderCognito  = "cognito"
	ProviderFirebase = "firebase"
	ProviderOIDC     = "oidc"
	ProviderLDAP     = "ldap"
)

type providerFactory func(ctx context.Context, cfg config.Config, logger zerolog.Logger) (auth.Provider, error)

var factories = map[string]providerFactory{
	ProviderLocal:    newLocalProvider,
	ProviderCognito:  newCognitoProvider,
	ProviderFirebase: newFirebaseProvider,
	ProviderOIDC:     newOIDCProvider,
	ProviderLDAP:     newLDAPProvider,
}

// SupportedProviders returns the accepted AUTH_PROVIDER values in sorted order.
func SupportedProviders() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewProvider builds the provider selected by cfg.GetProvider(), wrapped with
// logging and metrics.
func NewProvider(ctx context.Context, cfg config.Config, logger zerolog.Logger) (auth.Provider, error) {
	name := cfg.GetProvider()
	factory, ok := factories[name]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrUnsupportedProvider, "[bootstrap NewProvider] %q", name)
	}

	provider, err := factory(ctx, cfg, logger)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[bootstrap NewProvider] %s", name)
	}
	return auth.Instrument(name, provider, logger), nil
}

// NewRepository builds the configured provider and the Repository that owns it.
func NewRepository(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*auth.Repository, error) {
	provider, err := NewProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return auth.NewRepository(provider, auth.WithLogger(logger))
}

func newLocalProvider(_ context.Context, cfg config.Config, logger zerolog.Logger) (auth.Provider, error) {
	var signer keys.Signer
	switch {
	case cfg.GetTokenPrivateKeyFile() != "":
		keyPair, err := keys.LoadKeyPairFromFile(cfg.GetTokenIssuer(), cfg.GetTokenPrivateKeyFile())
		if err != nil {
			return nil, err
		}
		signer = keys.NewKeyPairSigner(keyPair)
	case cfg.GetTokenSecret() != "":
		signer = keys.NewHMACSigner(cfg.GetTokenSecret())
	default:
		return nil, apperrors.Missing("TOKEN_SECRET or TOKEN_PRIVATE_KEY_FILE")
	}

	userRepo := users.NewInMemoryUserRepo()
	n, err := users.LoadFile(cfg.GetLocalUsersFile(), userRepo)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("users", n).Str("file", cfg.GetLocalUsersFile()).Msg("loaded local users")

	creator := jwt.NewCreator(signer, cfg.GetTokenIssuer(), cfg.GetAccessTokenExpiry(), cfg.GetRefreshTokenExpiry())
	return local.New(userRepo, creator)
}

func newCognitoProvider(ctx context.Context, cfg config.Config, _ zerolog.Logger) (auth.Provider, error) {
	if cfg.GetCognitoRegion() == "" || cfg.GetCognitoClientID() == "" {
		return nil, apperrors.Missing("COGNITO_REGION", "COGNITO_CLIENT_ID")
	}
	return cognito.New(ctx, cognito.Options{
		Region:          cfg.GetCognitoRegion(),
		ClientID:        cfg.GetCognitoClientID(),
		ClientSecret:    cfg.GetCognitoClientSecret(),
		AccessKeyID:     cfg.GetAWSAccessKeyID(),
		SecretAccessKey: cfg.GetAWSSecretAccessKey(),
		SessionToken:    cfg.GetAWSSessionToken(),
	})
}

func newFirebaseProvider(ctx context.Context, cfg config.Config, _ zerolog.Logger) (auth.Provider, error) {
	if cfg.GetFirebaseAPIKey() == "" {
		return nil, apperrors.Missing("FIREBASE_API_KEY")
	}
	return firebase.New(ctx, firebase.Options{
		APIKey:   cfg.GetFirebaseAPIKey(),
		Endpoint: cfg.GetFirebaseEndpoint(),
	})
}

func newOIDCProvider(ctx context.Context, cfg config.Config, _ zerolog.Logger) (auth.Provider, error) {
	if cfg.GetOIDCIssuer() == "" || cfg.GetOIDCClientID() == "" {
		return nil, apperrors.Missing("OIDC_ISSUER", "OIDC_CLIENT_ID")
	}
	return oidc.New(ctx, oidc.Options{
		Issuer:       cfg.GetOIDCIssuer(),
		ClientID:     cfg.GetOIDCClientID(),
		ClientSecret: cfg.GetOIDCClientSecret(),
		Scopes:       cfg.GetOIDCScopes(),
	})
}

func newLDAPProvider(_ context.Context, cfg config.Config, _ zerolog.Logger) (auth.Provider, error) {
	if cfg.GetLDAPURL() == "" || cfg.GetLDAPBaseDN() == "" {
		return nil, apperrors.Missing("LDAP_URL", "LDAP_BASE_DN")
	}
	return ldap.New(ldap.Options{
		URL:          cfg.GetLDAPURL(),
		BindDN:       cfg.GetLDAPBindDN(),
		BindPassword: cfg.GetLDAPBindPassword(),
		BaseDN:       cfg.GetLDAPBaseDN(),
		Filter:       cfg.GetLDAPFilter(),
		StartTLS:     cfg.GetLDAPStartTLS(),
	})
}
