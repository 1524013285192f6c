// Package firebase signs users in with Firebase Authentication email/password
// accounts through the Identity Toolkit verifyPassword endpoint.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-signin/auth"
	"github.com/jrsteele09/go-signin/sessions"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

var _ auth.Provider = (*Provider)(nil)

type Options struct {
	APIKey string

	// Endpoint overrides the Identity Toolkit base URL (e.g. the auth emulator).
	Endpoint string
}

type Provider struct {
	relyingParty *identitytoolkit.RelyingpartyService
}

func New(ctx context.Context, opts Options, clientOpts ...option.ClientOption) (*Provider, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("[firebase New] api key is required")
	}

	clientOpts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, clientOpts...)
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	svc, err := identitytoolkit.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("[firebase New] %w", err)
	}
	return &Provider{relyingParty: svc.Relyingparty}, nil
}

// SignIn verifies the password with Firebase. Firebase rejections such as
// INVALID_PASSWORD or EMAIL_NOT_FOUND arrive as *googleapi.Error and are
// returned unchanged; a response without an ID token produces no session.
func (p *Provider) SignIn(ctx context.Context, email, password string) (sessions.Session, error) {
	resp, err := p.relyingParty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.IdToken == "" {
		return nil, nil
	}

	sessionEmail := resp.Email
	if sessionEmail == "" {
		sessionEmail = email
	}
	username := resp.DisplayName
	if username == "" {
		username = sessionEmail
	}
	return sessions.NewIDTokenSession(username, sessionEmail, resp.IdToken), nil
}
