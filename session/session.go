// Package session carries the bearer credential used on every API call.
//
// The credential state is an explicit value passed to whichever component
// issues requests, with typed absent/present states, rather than an ad hoc
// "is there a token" boolean checked at the routing layer.
package session

// Session is either anonymous or holds a bearer token. The zero value is
// anonymous and safe to use; calls made with it simply go out without an
// Authorization header and surface as remote errors.
type Session struct {
	token string
}

// Anonymous returns the absent-credential state.
func Anonymous() Session { return Session{} }

// WithToken returns a present-credential state. An empty token yields the
// anonymous state.
func WithToken(token string) Session { return Session{token: token} }

// Present reports whether a credential is attached.
func (s Session) Present() bool { return s.token != "" }

// Token returns the bearer token and whether one is present.
func (s Session) Token() (string, bool) { return s.token, s.token != "" }
