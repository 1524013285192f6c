// Package oidc signs users in against an OpenID Connect provider using the
// OAuth2 resource owner password credentials grant. The returned ID token is
// verified before a session is created.
package oidc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-signin/auth"
	"github.com/jrsteele09/go-signin/sessions"
	"golang.org/x/oauth2"
)

var _ auth.Provider = (*Provider)(nil)

type Options struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

type Provider struct {
	oauth2Config *oauth2.Config
	verifier     *oidc.IDTokenVerifier
}

// New discovers the issuer's endpoints and keys.
func New(ctx context.Context, opts Options) (*Provider, error) {
	issuer := strings.TrimSpace(opts.Issuer)
	clientID := strings.TrimSpace(opts.ClientID)
	if issuer == "" || clientID == "" {
		return nil, errors.New("[oidc New] issuer and client id are required")
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("[oidc New] failed to create OIDC provider: %w", err)
	}

	scopes := opts.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	return &Provider{
		oauth2Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: opts.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       scopes,
		},
		verifier: provider.Verifier(&oidc.Config{
			ClientID: clientID,
		}),
	}, nil
}

// SignIn exchanges the credentials for tokens. Token endpoint rejections
// (invalid_grant and friends) are returned as the *oauth2.RetrieveError the
// oauth2 package produced. A response without an id_token produces no session.
func (p *Provider) SignIn(ctx context.Context, email, password string) (sessions.Session, error) {
	oauth2Token, err := p.oauth2Config.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		return nil, err
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, nil
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Email             string `json:"email"`
		PreferredUsername string `json:"preferred_username"`
		Name              string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}

	sessionEmail := claims.Email
	if sessionEmail == "" {
		sessionEmail = email
	}
	username := claims.PreferredUsername
	if username == "" {
		username = sessionEmail
	}
	return sessions.NewIDTokenSession(username, sessionEmail, rawIDToken), nil
}
