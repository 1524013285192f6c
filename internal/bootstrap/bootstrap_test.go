package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-signin/auth"
	"github.com/jrsteele09/go-signin/internal/bootstrap"
	"github.com/jrsteele09/go-signin/internal/config"
	apperrors "github.com/jrsteele09/go-signin/internal/errors"
	"github.com/jrsteele09/go-signin/sessions"
	"github.com/jrsteele09/go-signin/token/keys"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testUserEmail    = "john.doe@example.com"
	testUserPassword = "Password123"
)

func writeUsersFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "users.json")
	content := `[{"email": "` + testUserEmail + `", "username": "john", "password": "` + testUserPassword + `", "verified": true}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSupportedProviders(t *testing.T) {
	require.Equal(t, []string{"cognito", "firebase", "ldap", "local", "oidc"}, bootstrap.SupportedProviders())
}

func TestNewProvider_Unsupported(t *testing.T) {
	t.Setenv("AUTH_PROVIDER", "kerberos")

	_, err := bootstrap.NewProvider(context.Background(), config.New(), zerolog.Nop())
	require.ErrorIs(t, err, apperrors.ErrUnsupportedProvider)
	require.ErrorContains(t, err, "kerberos")
}

func TestNewProvider_MissingConfig(t *testing.T) {
	for _, name := range []string{"local", "cognito", "firebase", "oidc", "ldap"} {
		t.Run(name, func(t *testing.T) {
			for _, v := range []string{
				"TOKEN_SECRET", "TOKEN_PRIVATE_KEY_FILE",
				"COGNITO_REGION", "AWS_REGION", "COGNITO_CLIENT_ID",
				"FIREBASE_API_KEY",
				"OIDC_ISSUER", "OIDC_CLIENT_ID",
				"LDAP_URL", "LDAP_BASE_DN",
			} {
				t.Setenv(v, "")
			}
			t.Setenv("AUTH_PROVIDER", name)

			_, err := bootstrap.NewProvider(context.Background(), config.New(), zerolog.Nop())
			require.ErrorIs(t, err, apperrors.ErrMissingConfig)
		})
	}
}

func TestNewRepository_LocalHMAC(t *testing.T) {
	t.Setenv("AUTH_PROVIDER", "local")
	t.Setenv("TOKEN_PRIVATE_KEY_FILE", "")
	t.Setenv("TOKEN_SECRET", "1234")
	t.Setenv("LOCAL_USERS_FILE", writeUsersFile(t))

	repo, err := bootstrap.NewRepository(context.Background(), config.New(), zerolog.Nop())
	require.NoError(t, err)

	session, err := repo.SignIn(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.Equal(t, sessions.KindTokenPair, session.Kind())
	require.Equal(t, "john", session.Username())
	require.NotEmpty(t, session.SessionToken())

	_, err = repo.SignIn(context.Background(), testUserEmail, "wrong")
	require.ErrorIs(t, err, auth.ErrFailedToAuthenticate)
}

func TestNewRepository_LocalRS256(t *testing.T) {
	kp, err := keys.GenerateRSAKeyPair("go-signin", 2048)
	require.NoError(t, err)
	pemData, err := kp.ExportPrivateKeyPEM()
	require.NoError(t, err)
	keyFile := filepath.Join(t.TempDir(), "signing.pem")
	require.NoError(t, os.WriteFile(keyFile, []byte(pemData), 0o600))

	t.Setenv("AUTH_PROVIDER", "local")
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("TOKEN_PRIVATE_KEY_FILE", keyFile)
	t.Setenv("LOCAL_USERS_FILE", writeUsersFile(t))

	repo, err := bootstrap.NewRepository(context.Background(), config.New(), zerolog.Nop())
	require.NoError(t, err)

	session, err := repo.SignIn(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.NotEmpty(t, session.SessionToken())
}

func TestNewProvider_LocalMissingUsersFile(t *testing.T) {
	t.Setenv("AUTH_PROVIDER", "local")
	t.Setenv("TOKEN_PRIVATE_KEY_FILE", "")
	t.Setenv("TOKEN_SECRET", "1234")
	t.Setenv("LOCAL_USERS_FILE", filepath.Join(t.TempDir(), "missing.json"))

	_, err := bootstrap.NewProvider(context.Background(), config.New(), zerolog.Nop())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewProvider_RemoteBackendsConstructOffline(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"cognito", map[string]string{
			"COGNITO_REGION":            "eu-west-2",
			"COGNITO_CLIENT_ID":         "client",
			"COGNITO_ACCESS_KEY_ID":     "AKIDEXAMPLE",
			"COGNITO_SECRET_ACCESS_KEY": "secret",
		}},
		{"firebase", map[string]string{"FIREBASE_API_KEY": "key"}},
		{"ldap", map[string]string{"LDAP_URL": "ldap://localhost:389", "LDAP_BASE_DN": "dc=example,dc=com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_PROVIDER", tt.name)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			provider, err := bootstrap.NewProvider(context.Background(), config.New(), zerolog.Nop())
			require.NoError(t, err)
			require.NotNil(t, provider)
		})
	}
}
