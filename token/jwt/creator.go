package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-signin/internal/errors"
	"github.com/jrsteele09/go-signin/token/keys"
	"github.com/jrsteele09/go-signin/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Token uses, carried in the "token_use" claim.
const (
	AccessTokenUse  = "access"
	RefreshTokenUse = "refresh"
)

// Creator handles JWT creation and verification for locally authenticated users
type Creator struct {
	signer        keys.Signer
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewCreator creates a new JWT creator
func NewCreator(signer keys.Signer, issuer string, accessExpiry, refreshExpiry time.Duration) *Creator {
	return &Creator{
		signer:        signer,
		issuer:        issuer,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// CreateAccessToken creates a short-lived bearer token for the user
func (c *Creator) CreateAccessToken(user *users.User) (string, error) {
	claims := c.baseClaims(user, AccessTokenUse, c.accessExpiry)
	claims["email"] = user.Email
	claims["username"] = user.DisplayName()
	return c.sign(claims)
}

// CreateRefreshToken creates a long-lived token that only identifies the user
func (c *Creator) CreateRefreshToken(user *users.User) (string, error) {
	return c.sign(c.baseClaims(user, RefreshTokenUse, c.refreshExpiry))
}

// Parse verifies rawToken and checks it was issued by this creator for the given use
func (c *Creator) Parse(rawToken, use string) (jwtlib.MapClaims, error) {
	token, err := jwtlib.ParseWithClaims(
		rawToken,
		jwtlib.MapClaims{},
		c.signer.GetVerificationKey,
		jwtlib.WithIssuer(c.issuer),
		jwtlib.WithTimeFunc(NowTimeFunc),
		jwtlib.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok || claims["token_use"] != use {
		return nil, fmt.Errorf("%w: expected %s token", apperrors.ErrInvalidToken, use)
	}
	return claims, nil
}

func (c *Creator) baseClaims(user *users.User, use string, expiry time.Duration) jwtlib.MapClaims {
	now := NowTimeFunc()
	return jwtlib.MapClaims{
		"iss":       c.issuer,               // The issuer of the token
		"sub":       user.ID,                // The user's unique ID
		"iat":       now.Unix(),             // Issued At
		"exp":       now.Add(expiry).Unix(), // Expiry
		"jti":       uuid.New().String(),    // Unique token ID
		"token_use": use,                    // access or refresh
	}
}

// sign signs JWT claims using the configured signer
func (c *Creator) sign(claims jwtlib.MapClaims) (string, error) {
	signedToken, err := c.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signedToken, nil
}
