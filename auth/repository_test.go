package auth_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jrsteele09/go-signin/auth"
	fakeprovider "github.com/jrsteele09/go-signin/auth/providerfake"
	"github.com/jrsteele09/go-signin/sessions"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testUsername        = "mock"
	testEmail           = "mock@gmail.com"
	testSuccessPassword = "123"
)

func newTestRepository(t *testing.T, provider auth.Provider) *auth.Repository {
	t.Helper()

	repo, err := auth.NewRepository(provider)
	require.NoError(t, err)
	return repo
}

func TestNewRepository_RequiresProvider(t *testing.T) {
	repo, err := auth.NewRepository(nil)
	require.ErrorIs(t, err, auth.ErrProviderRequired)
	require.Nil(t, repo)
}

func TestSignIn_SuccessReturnsProviderSession(t *testing.T) {
	configured := sessions.NewUserSession(testUsername, testEmail)
	repo := newTestRepository(t, fakeprovider.New(configured, testSuccessPassword))

	session, err := repo.SignIn(context.Background(), "email", testSuccessPassword)
	require.NoError(t, err)
	require.Equal(t, configured, session)
	require.Equal(t, testUsername, session.Username())
	require.Equal(t, testEmail, session.Email())
}

func TestSignIn_WrongPasswordFailsUniformly(t *testing.T) {
	repo := newTestRepository(t, fakeprovider.New(sessions.NewUserSession(testUsername, testEmail), testSuccessPassword))

	for _, password := range []string{"wrong", "", "1234", "12", " 123"} {
		t.Run(fmt.Sprintf("password=%q", password), func(t *testing.T) {
			session, err := repo.SignIn(context.Background(), "email", password)
			require.Nil(t, session)
			require.ErrorIs(t, err, auth.ErrFailedToAuthenticate)
			require.EqualError(t, err, "Failed to authenticate")
			require.True(t, auth.IsAuthenticationFailure(err))
		})
	}
}

func TestSignIn_ProviderFaultPropagatesVerbatim(t *testing.T) {
	fault := errors.New("connection reset by peer")
	repo := newTestRepository(t, fakeprovider.New(nil, testSuccessPassword, fakeprovider.WithFault(fault)))

	session, err := repo.SignIn(context.Background(), "email", testSuccessPassword)
	require.Nil(t, session)
	require.Same(t, fault, err)
	require.False(t, auth.IsAuthenticationFailure(err))
}

func TestSignIn_SwappingProvidersKeepsContract(t *testing.T) {
	tests := []struct {
		name      string
		session   sessions.Session
		wantToken string
		wantKind  sessions.Kind
	}{
		{"base", sessions.NewUserSession("u", "e@x.com"), "", sessions.KindUser},
		{"token pair", sessions.NewTokenPairSession("u", "e@x.com", "abc", "def"), "abc", sessions.KindTokenPair},
		{"id token", sessions.NewIDTokenSession("u", "e@x.com", "xyz"), "xyz", sessions.KindIDToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t, fakeprovider.New(tt.session, testSuccessPassword))

			session, err := repo.SignIn(context.Background(), "e@x.com", testSuccessPassword)
			require.NoError(t, err)
			require.Equal(t, tt.wantToken, session.SessionToken())
			require.Equal(t, tt.wantKind, session.Kind())
			require.Equal(t, "u", session.Username())

			_, err = repo.SignIn(context.Background(), "e@x.com", "wrong")
			require.EqualError(t, err, "Failed to authenticate")
		})
	}
}

func TestSignIn_RepeatedCallsAreIndependent(t *testing.T) {
	configured := sessions.NewTokenPairSession("u", "e@x.com", "abc", "def")
	provider := fakeprovider.New(configured, testSuccessPassword)
	repo := newTestRepository(t, provider)

	first, err := repo.SignIn(context.Background(), "e@x.com", testSuccessPassword)
	require.NoError(t, err)
	second, err := repo.SignIn(context.Background(), "e@x.com", testSuccessPassword)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.EqualValues(t, 2, provider.Calls())
}

func TestSignIn_Concurrent(t *testing.T) {
	provider := fakeprovider.New(sessions.NewIDTokenSession("u", "e@x.com", "xyz"), testSuccessPassword)
	repo := newTestRepository(t, provider)

	const workers = 32
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			password := testSuccessPassword
			if i%2 == 1 {
				password = "wrong"
			}
			_, errs[i] = repo.SignIn(context.Background(), "e@x.com", password)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if i%2 == 1 {
			require.ErrorIs(t, err, auth.ErrFailedToAuthenticate)
		} else {
			require.NoError(t, err)
		}
	}
	require.EqualValues(t, workers, provider.Calls())
}

func TestSignIn_NeverLogsPassword(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	repo, err := auth.NewRepository(
		fakeprovider.New(sessions.NewUserSession("u", "e@x.com"), "s3cret-pass"),
		auth.WithLogger(logger),
	)
	require.NoError(t, err)

	_, err = repo.SignIn(context.Background(), "e@x.com", "s3cret-pass")
	require.NoError(t, err)
	_, err = repo.SignIn(context.Background(), "e@x.com", "other-pass")
	require.Error(t, err)

	require.Contains(t, buf.String(), "sign-in succeeded")
	require.Contains(t, buf.String(), "sign-in rejected")
	require.NotContains(t, buf.String(), "s3cret-pass")
	require.NotContains(t, buf.String(), "other-pass")
}

func TestSignIn_NilSessionPointerFailsUniformly(t *testing.T) {
	provider := auth.ProviderFunc(func(context.Context, string, string) (sessions.Session, error) {
		var s *sessions.IDTokenSession
		return s, nil
	})
	repo, err := auth.NewRepository(provider, auth.WithLogger(zerolog.New(&bytes.Buffer{}).Level(zerolog.DebugLevel)))
	require.NoError(t, err)

	var session sessions.Session
	require.NotPanics(t, func() {
		session, err = repo.SignIn(context.Background(), "e@x.com", "pw")
	})
	require.Nil(t, session)
	require.EqualError(t, err, "Failed to authenticate")
}

func TestProviderFunc(t *testing.T) {
	var gotEmail, gotPassword string
	provider := auth.ProviderFunc(func(_ context.Context, email, password string) (sessions.Session, error) {
		gotEmail, gotPassword = email, password
		return nil, nil
	})
	repo := newTestRepository(t, provider)

	_, err := repo.SignIn(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, auth.ErrFailedToAuthenticate)
	require.Equal(t, "a@b.c", gotEmail)
	require.Equal(t, "pw", gotPassword)
}
