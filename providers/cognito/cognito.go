// Package cognito signs users in against an Amazon Cognito user pool using the
// USER_PASSWORD_AUTH flow.
package cognito

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-signin/auth"
	"github.com/jrsteele09/go-signin/sessions"
)

const defaultHTTPTimeout = 30 * time.Second

var _ auth.Provider = (*Provider)(nil)

// Options configure the Cognito provider.
type Options struct {
	Region       string
	ClientID     string
	ClientSecret string // only for app clients that have a secret

	// Static credentials are optional; the default AWS chain is used otherwise.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

type initiateAuthAPI interface {
	InitiateAuth(context.Context, *cognitoidentityprovider.InitiateAuthInput, ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
}

type Provider struct {
	clientID     string
	clientSecret string
	api          initiateAuthAPI
}

func New(ctx context.Context, opts Options) (*Provider, error) {
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		return nil, errors.New("[cognito New] region is required")
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithHTTPClient(&http.Client{Timeout: defaultHTTPTimeout}),
	}
	if opts.AccessKeyID != "" || opts.SecretAccessKey != "" {
		accessKeyID := strings.TrimSpace(opts.AccessKeyID)
		secretAccessKey := strings.TrimSpace(opts.SecretAccessKey)
		if accessKeyID == "" || secretAccessKey == "" {
			return nil, errors.New("[cognito New] access key id and secret access key must be set together")
		}
		loadOpts = append(loadOpts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			strings.TrimSpace(opts.SessionToken),
		)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("[cognito New] load aws config: %w", err)
	}
	return NewWithClient(opts, cognitoidentityprovider.NewFromConfig(cfg))
}

func NewWithClient(opts Options, api initiateAuthAPI) (*Provider, error) {
	clientID := strings.TrimSpace(opts.ClientID)
	if clientID == "" {
		return nil, errors.New("[cognito NewWithClient] app client id is required")
	}
	if api == nil {
		return nil, errors.New("[cognito NewWithClient] client is required")
	}
	return &Provider{
		clientID:     clientID,
		clientSecret: strings.TrimSpace(opts.ClientSecret),
		api:          api,
	}, nil
}

// SignIn runs InitiateAuth. When Cognito answers with a challenge instead of
// tokens (MFA, NEW_PASSWORD_REQUIRED, ...) no session is produced. Errors from
// Cognito, including NotAuthorizedException, are returned unchanged.
func (p *Provider) SignIn(ctx context.Context, email, password string) (sessions.Session, error) {
	params := map[string]string{
		"USERNAME": email,
		"PASSWORD": password,
	}
	if p.clientSecret != "" {
		params["SECRET_HASH"] = secretHash(email, p.clientID, p.clientSecret)
	}

	out, err := p.api.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		ClientId:       aws.String(p.clientID),
		AuthParameters: params,
	})
	if err != nil {
		return nil, err
	}

	result := out.AuthenticationResult
	if result == nil || aws.ToString(result.AccessToken) == "" {
		return nil, nil
	}

	accessToken := aws.ToString(result.AccessToken)
	username := claimString(accessToken, "username", email)
	sessionEmail := claimString(aws.ToString(result.IdToken), "email", email)

	return sessions.NewTokenPairSession(username, sessionEmail, accessToken, aws.ToString(result.RefreshToken)), nil
}

// secretHash computes Base64(HMAC-SHA256(clientSecret, username + clientID)).
func secretHash(username, clientID, clientSecret string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(username + clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// claimString reads a string claim from a Cognito issued JWT without verifying
// it; the token came straight from Cognito over TLS.
func claimString(rawToken, claim, fallback string) string {
	if rawToken == "" {
		return fallback
	}
	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return fallback
	}
	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return fallback
	}
	if v, ok := claims[claim].(string); ok && v != "" {
		return v
	}
	return fallback
}
