// Package verify holds registrations that are waiting for their email code.
// Entries live in process memory only: they are not part of the durable user
// store and disappear on restart, at which point the client simply requests
// a new code.
package verify

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"
)

var (
	// ErrNoPending is returned when no verification was requested for the
	// email, or the request has expired.
	ErrNoPending = errors.New("no verification request found for this email")
	// ErrCodeMismatch is returned when the submitted code is wrong.
	ErrCodeMismatch = errors.New("invalid verification code")
)

// Registration is a pending account creation. The password is kept in plain
// form until verification succeeds; only then is it hashed and persisted.
type Registration struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	PushToken   string
	Code        string
	ExpiresAt   time.Time
}

// PendingStore is an in-memory TTL cache of registrations keyed by email.
// Requesting a new code for the same email overwrites the previous entry.
type PendingStore struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]Registration
}

// NewPendingStore returns a store whose entries expire after ttl.
func NewPendingStore(ttl time.Duration) *PendingStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &PendingStore{ttl: ttl, entries: make(map[string]Registration)}
}

// Put stores a registration under its normalized email, generating and
// returning the 6-digit code the user must echo back.
func (s *PendingStore) Put(reg Registration) (string, error) {
	code, err := sixDigitCode()
	if err != nil {
		return "", err
	}
	reg.Email = normalize(reg.Email)
	reg.Code = code
	reg.ExpiresAt = time.Now().UTC().Add(s.ttl)

	s.mu.Lock()
	s.entries[reg.Email] = reg
	s.mu.Unlock()
	return code, nil
}

// Confirm checks the code for the email and, on success, removes and
// returns the pending registration.
func (s *PendingStore) Confirm(email, code string) (Registration, error) {
	email = normalize(email)

	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.entries[email]
	if !ok {
		return Registration{}, ErrNoPending
	}
	if time.Now().UTC().After(reg.ExpiresAt) {
		delete(s.entries, email)
		return Registration{}, ErrNoPending
	}
	if reg.Code != code {
		return Registration{}, ErrCodeMismatch
	}
	delete(s.entries, email)
	return reg, nil
}

// Drop removes a pending registration without confirming it.
func (s *PendingStore) Drop(email string) {
	s.mu.Lock()
	delete(s.entries, normalize(email))
	s.mu.Unlock()
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// sixDigitCode draws a uniform random code in [100000, 999999].
func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}
