// Package session maps opaque cookie tokens to user identities.
//
// A Session is created per request by the HTTP layer and handed explicitly to
// every operation that needs to know who is calling. It is either
// Unauthenticated or Authenticated(userID); only a Manager moves it between
// the two states, and every transition is written through to a Store.
package session

import "errors"

var (
	// ErrNoSession is returned when an operation needs an authenticated
	// session and the session is not.
	ErrNoSession = errors.New("no active session")
	// ErrSessionNotFound is returned by a Store for unknown or expired tokens.
	ErrSessionNotFound = errors.New("session not found")
)

// State of a session.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Session is the identity attached to a single request.
type Session struct {
	token  string
	userID int64
}

// Anonymous returns an unauthenticated session.
func Anonymous() *Session {
	return &Session{}
}

// UserID returns the authenticated user's id. ok is false for an
// unauthenticated session.
func (s *Session) UserID() (id int64, ok bool) {
	if s == nil || s.userID == 0 {
		return 0, false
	}
	return s.userID, true
}

// Token is the opaque value carried by the session cookie. It is empty for
// unauthenticated sessions.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

func (s *Session) State() State {
	if _, ok := s.UserID(); ok {
		return Authenticated
	}
	return Unauthenticated
}

func (s *Session) Authenticated() bool {
	return s.State() == Authenticated
}
