// Package ldap signs users in by binding to an LDAP directory as the user.
// Directories issue no bearer token, so sessions are base UserSessions.
package ldap

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/jrsteele09/go-signin/auth"
	"github.com/jrsteele09/go-signin/sessions"
)

const (
	emailPlaceholder = "{email}"

	// used when the caller's context has no deadline
	defaultTimeout = 30 * time.Second
)

var _ auth.Provider = (*Provider)(nil)

type Options struct {
	URL          string
	BindDN       string
	BindPassword string
	BaseDN       string
	Filter       string // must contain {email}
	StartTLS     bool
	TLSConfig    *tls.Config
}

// conn is the subset of *ldap.Conn the provider uses.
type conn interface {
	StartTLS(config *tls.Config) error
	Bind(username, password string) error
	Search(searchRequest *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
}

type dialFunc func(ctx context.Context, url string) (conn, error)

type Provider struct {
	opts Options
	dial dialFunc
}

func New(opts Options) (*Provider, error) {
	return newWithDialer(opts, dialContext)
}

// dialContext connects to url and bounds the dial and every later request by
// the context deadline, or by defaultTimeout when ctx has none.
func dialContext(ctx context.Context, url string) (conn, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultTimeout)
	}

	l, err := ldap.DialURL(url, ldap.DialWithDialer(&net.Dialer{Deadline: deadline}))
	if err != nil {
		return nil, err
	}
	l.SetTimeout(time.Until(deadline))
	return l, nil
}

func newWithDialer(opts Options, dial dialFunc) (*Provider, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, errors.New("[ldap New] url is required")
	}
	if strings.TrimSpace(opts.BaseDN) == "" {
		return nil, errors.New("[ldap New] base dn is required")
	}
	if !strings.Contains(opts.Filter, emailPlaceholder) {
		return nil, errors.New("[ldap New] filter must contain " + emailPlaceholder)
	}
	return &Provider{opts: opts, dial: dial}, nil
}

// SignIn binds with the service account, finds the user by email and binds
// again as that user. The context deadline bounds the whole exchange. An unknown user, an ambiguous match or invalid
// credentials (result code 49) produce no session.
func (p *Provider) SignIn(ctx context.Context, email, password string) (sessions.Session, error) {
	// An empty password would be an unauthenticated bind, which most servers accept.
	if password == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l, err := p.dial(ctx, p.opts.URL)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	if p.opts.StartTLS {
		if err := l.StartTLS(p.opts.TLSConfig); err != nil {
			return nil, err
		}
	}

	if p.opts.BindDN != "" {
		if err := l.Bind(p.opts.BindDN, p.opts.BindPassword); err != nil {
			return nil, err
		}
	}

	sr, err := l.Search(ldap.NewSearchRequest(
		p.opts.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 2, 0, false,
		strings.ReplaceAll(p.opts.Filter, emailPlaceholder, ldap.EscapeFilter(email)),
		[]string{"dn", "mail", "uid", "cn"},
		nil,
	))
	if err != nil && !ldap.IsErrorWithCode(err, ldap.LDAPResultSizeLimitExceeded) {
		return nil, err
	}
	if sr == nil || len(sr.Entries) != 1 {
		return nil, nil
	}
	entry := sr.Entries[0]

	if err := l.Bind(entry.DN, password); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return nil, nil
		}
		return nil, err
	}

	sessionEmail := firstNonEmpty(entry.GetAttributeValue("mail"), email)
	username := firstNonEmpty(entry.GetAttributeValue("uid"), entry.GetAttributeValue("cn"), sessionEmail)
	return sessions.NewUserSession(username, sessionEmail), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
