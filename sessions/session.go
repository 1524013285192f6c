package sessions

import "reflect"

// Kind identifies which session variant a provider produced.
type Kind string

const (
	// KindUser is the base session. It carries no bearer credential.
	KindUser Kind = "user"

	// KindTokenPair is produced by backends that issue an access/refresh token pair
	// (e.g. Cognito user pools, the local provider).
	KindTokenPair Kind = "token_pair"

	// KindIDToken is produced by backends that issue an OpenID Connect ID token
	// (e.g. Firebase, generic OIDC providers).
	KindIDToken Kind = "id_token"
)

// Session is an authenticated identity. Every variant exposes the same accessors,
// so callers can use SessionToken as a bearer credential without knowing which
// backend created the session.
type Session interface {
	Username() string
	Email() string
	SessionToken() string
	Kind() Kind
}

var (
	_ Session = UserSession{}
	_ Session = TokenPairSession{}
	_ Session = IDTokenSession{}
)

// UserSession is the base session: an identity with no backend specific token.
type UserSession struct {
	username string
	email    string
}

func NewUserSession(username, email string) UserSession {
	return UserSession{username: username, email: email}
}

func (s UserSession) Username() string { return s.username }

func (s UserSession) Email() string { return s.email }

// SessionToken is always empty for the base session.
func (s UserSession) SessionToken() string { return "" }

func (s UserSession) Kind() Kind { return KindUser }

// TokenPairSession is returned by backends that answer a sign-in with an
// access token and a refresh token. The access token is the session token.
type TokenPairSession struct {
	UserSession
	accessToken  string
	refreshToken string
}

func NewTokenPairSession(username, email, accessToken, refreshToken string) TokenPairSession {
	return TokenPairSession{
		UserSession:  NewUserSession(username, email),
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

func (s TokenPairSession) AccessToken() string { return s.accessToken }

func (s TokenPairSession) RefreshToken() string { return s.refreshToken }

func (s TokenPairSession) SessionToken() string { return s.accessToken }

func (s TokenPairSession) Kind() Kind { return KindTokenPair }

// IDTokenSession is returned by backends that answer a sign-in with an
// OpenID Connect ID token (JWT). The ID token is the session token.
type IDTokenSession struct {
	UserSession
	idToken string
}

func NewIDTokenSession(username, email, idToken string) IDTokenSession {
	return IDTokenSession{
		UserSession: NewUserSession(username, email),
		idToken:     idToken,
	}
}

func (s IDTokenSession) IDToken() string { return s.idToken }

func (s IDTokenSession) SessionToken() string { return s.idToken }

func (s IDTokenSession) Kind() Kind { return KindIDToken }

// BearerHeader formats the session token for an Authorization header.
// It returns an empty string when the session has no token.
func BearerHeader(s Session) string {
	if s == nil || s.SessionToken() == "" {
		return ""
	}
	return "Bearer " + s.SessionToken()
}

// IsNil reports whether s holds no session, including a typed nil pointer
// such as (*IDTokenSession)(nil).
func IsNil(s Session) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
