// Package local signs users in against a users.UserRepo, checking bcrypt
// password hashes and minting a JWT access/refresh token pair.
package local

import (
	"context"
	"errors"

	"github.com/jrsteele09/go-signin/auth"
	apperrors "github.com/jrsteele09/go-signin/internal/errors"
	"github.com/jrsteele09/go-signin/sessions"
	"github.com/jrsteele09/go-signin/token/jwt"
	"github.com/jrsteele09/go-signin/users"
)

var _ auth.Provider = (*Provider)(nil)

type Provider struct {
	users   users.UserRepo
	creator *jwt.Creator
}

func New(userRepo users.UserRepo, creator *jwt.Creator) (*Provider, error) {
	if userRepo == nil {
		return nil, errors.New("[local New] user repo is required")
	}
	if creator == nil {
		return nil, errors.New("[local New] token creator is required")
	}
	return &Provider{users: userRepo, creator: creator}, nil
}

// SignIn returns a TokenPairSession for a verified, unblocked user whose
// password matches. Unknown users and rejected passwords produce no session.
func (p *Provider) SignIn(_ context.Context, email, password string) (sessions.Session, error) {
	user, err := p.users.GetByEmail(email)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !user.CanSignIn() || !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil
	}

	accessToken, err := p.creator.CreateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := p.creator.CreateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return sessions.NewTokenPairSession(user.DisplayName(), user.Email, accessToken, refreshToken), nil
}
