// Package auth holds the in-memory session registry. The registry is the
// liveness half of session validation: a JWT that parses and has not expired
// is still rejected unless it is the token currently bound to its user here.
//
// The registry is deliberately process-local and non-durable. It starts
// empty, so a restart logs every user out. That limitation is part of the
// session contract, not an accident.
package auth

import (
	"errors"
	"sync"
)

// ErrAlreadyLoggedIn is returned when a login is attempted while the user
// already holds an active session. The policy is to reject the second login
// rather than silently invalidate the first token; the existing session must
// be logged out first.
var ErrAlreadyLoggedIn = errors.New("user is already logged in")

// SessionRegistry maps each user id to its single active session token.
type SessionRegistry struct {
	mu     sync.RWMutex
	active map[uint64]string
}

// NewSessionRegistry returns an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{active: make(map[uint64]string)}
}

// Bind records token as the user's active session. It fails with
// ErrAlreadyLoggedIn when a different token is already outstanding for the
// user. Re-binding the identical token is a no-op so a retried login
// response cannot lock the user out.
func (r *SessionRegistry) Bind(userID uint64, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.active[userID]; ok && cur != token {
		return ErrAlreadyLoggedIn
	}
	r.active[userID] = token
	return nil
}

// IsActive reports whether token is the currently bound session for userID.
func (r *SessionRegistry) IsActive(userID uint64, token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active[userID] == token
}

// Revoke drops the user's active session. Revoking a user with no session
// is a no-op, never an error.
func (r *SessionRegistry) Revoke(userID uint64) {
	r.mu.Lock()
	delete(r.active, userID)
	r.mu.Unlock()
}

// ActiveCount returns the number of live sessions. Useful for tests.
func (r *SessionRegistry) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.active)
}
