package fakeprovider

import (
	"context"
	"sync/atomic"

	"github.com/jrsteele09/go-signin/auth"
	"github.com/jrsteele09/go-signin/sessions"
)

var _ auth.Provider = (*FakeProvider)(nil)

// FakeProvider is a deterministic provider. It returns the configured session
// when the password equals the success password and no session otherwise.
type FakeProvider struct {
	session         sessions.Session
	successPassword string
	fault           error
	calls           atomic.Int64
}

type Option func(*FakeProvider)

// WithFault makes every SignIn call fail with err, as a backend fault would.
func WithFault(err error) Option {
	return func(fp *FakeProvider) {
		fp.fault = err
	}
}

func New(session sessions.Session, successPassword string, options ...Option) *FakeProvider {
	fp := &FakeProvider{
		session:         session,
		successPassword: successPassword,
	}
	for _, opt := range options {
		opt(fp)
	}
	return fp
}

func (fp *FakeProvider) SignIn(_ context.Context, _, password string) (sessions.Session, error) {
	fp.calls.Add(1)

	if fp.fault != nil {
		return nil, fp.fault
	}
	if password != fp.successPassword {
		return nil, nil
	}
	return fp.session, nil
}

// Calls returns the number of SignIn calls made so far.
func (fp *FakeProvider) Calls() int64 {
	return fp.calls.Load()
}
