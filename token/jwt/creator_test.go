package jwt_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-signin/internal/errors"
	"github.com/jrsteele09/go-signin/token/jwt"
	"github.com/jrsteele09/go-signin/token/keys"
	"github.com/jrsteele09/go-signin/users"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "com.testissuer"
	testSecret = "1234"
)

var testUser = &users.User{ID: "user-1", Email: "john.doe@example.com", Username: "john"}

func TestCreator_AccessToken(t *testing.T) {
	c := jwt.NewCreator(keys.NewHMACSigner(testSecret), testIssuer, time.Hour, 24*time.Hour)

	raw, err := c.CreateAccessToken(testUser)
	require.NoError(t, err)

	claims, err := c.Parse(raw, jwt.AccessTokenUse)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims["sub"])
	require.Equal(t, "john.doe@example.com", claims["email"])
	require.Equal(t, "john", claims["username"])
	require.Equal(t, testIssuer, claims["iss"])
	require.NotEmpty(t, claims["jti"])
}

func TestCreator_RefreshTokenIsNotAnAccessToken(t *testing.T) {
	c := jwt.NewCreator(keys.NewHMACSigner(testSecret), testIssuer, time.Hour, 24*time.Hour)

	raw, err := c.CreateRefreshToken(testUser)
	require.NoError(t, err)

	_, err = c.Parse(raw, jwt.RefreshTokenUse)
	require.NoError(t, err)

	_, err = c.Parse(raw, jwt.AccessTokenUse)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestCreator_RejectsForeignAndExpiredTokens(t *testing.T) {
	c := jwt.NewCreator(keys.NewHMACSigner(testSecret), testIssuer, time.Hour, 24*time.Hour)
	other := jwt.NewCreator(keys.NewHMACSigner("another-secret"), testIssuer, time.Hour, 24*time.Hour)

	foreign, err := other.CreateAccessToken(testUser)
	require.NoError(t, err)
	_, err = c.Parse(foreign, jwt.AccessTokenUse)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)

	raw, err := c.CreateAccessToken(testUser)
	require.NoError(t, err)

	jwt.NowTimeFunc = func() time.Time { return time.Now().Add(2 * time.Hour) }
	defer func() { jwt.NowTimeFunc = time.Now }()

	_, err = c.Parse(raw, jwt.AccessTokenUse)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestCreator_RS256(t *testing.T) {
	kp, err := keys.GenerateRSAKeyPair("kid-1", 2048)
	require.NoError(t, err)
	c := jwt.NewCreator(keys.NewKeyPairSigner(kp), testIssuer, time.Hour, 24*time.Hour)

	raw, err := c.CreateAccessToken(testUser)
	require.NoError(t, err)

	claims, err := c.Parse(raw, jwt.AccessTokenUse)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims["sub"])

	hmac := jwt.NewCreator(keys.NewHMACSigner(testSecret), testIssuer, time.Hour, 24*time.Hour)
	_, err = hmac.Parse(raw, jwt.AccessTokenUse)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
