package auth

import (
	"strconv"
	"sync"
	"testing"
)

func TestBindRejectsSecondSession(t *testing.T) {
	r := NewSessionRegistry()

	if err := r.Bind(1, "token-a"); err != nil {
		t.Fatalf("first bind: %v", err)
	}
	if err := r.Bind(1, "token-b"); err != ErrAlreadyLoggedIn {
		t.Fatalf("expected ErrAlreadyLoggedIn, got %v", err)
	}
	if !r.IsActive(1, "token-a") {
		t.Fatal("original token should remain active")
	}
	if r.IsActive(1, "token-b") {
		t.Fatal("rejected token must not be active")
	}
}

func TestBindSameTokenIsIdempotent(t *testing.T) {
	r := NewSessionRegistry()
	if err := r.Bind(7, "tok"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := r.Bind(7, "tok"); err != nil {
		t.Fatalf("re-bind of same token: %v", err)
	}
	if got := r.ActiveCount(); got != 1 {
		t.Fatalf("active sessions = %d, want 1", got)
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	r := NewSessionRegistry()
	if err := r.Bind(3, "tok"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	r.Revoke(3)
	if r.IsActive(3, "tok") {
		t.Fatal("token should be inactive after revoke")
	}
	// Revoking again or revoking an unknown user must not panic or error.
	r.Revoke(3)
	r.Revoke(99)

	if err := r.Bind(3, "tok2"); err != nil {
		t.Fatalf("bind after revoke: %v", err)
	}
}

func TestConcurrentLoginsLeaveOneActiveToken(t *testing.T) {
	r := NewSessionRegistry()

	const n = 32
	var wg sync.WaitGroup
	wins := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok := "token-" + strconv.Itoa(i)
			if err := r.Bind(42, tok); err == nil {
				wins <- tok
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	active := 0
	for tok := range wins {
		if r.IsActive(42, tok) {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("exactly one token should be active, got %d", active)
	}
	if got := r.ActiveCount(); got != 1 {
		t.Fatalf("active sessions = %d, want 1", got)
	}
}
