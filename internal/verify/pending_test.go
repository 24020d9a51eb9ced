package verify

import (
	"testing"
	"time"
)

func TestPutAndConfirm(t *testing.T) {
	s := NewPendingStore(time.Minute)

	code, err := s.Put(Registration{
		Name:        "Lina",
		Email:       "  Lina@Example.COM ",
		Password:    "secret",
		PhoneNumber: "+100200300",
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("code %q is not six digits", code)
	}

	reg, err := s.Confirm("lina@example.com", code)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if reg.Name != "Lina" || reg.Password != "secret" {
		t.Fatalf("unexpected registration: %+v", reg)
	}

	// A confirmed entry is consumed.
	if _, err := s.Confirm("lina@example.com", code); err != ErrNoPending {
		t.Fatalf("expected ErrNoPending, got %v", err)
	}
}

func TestConfirmWrongCode(t *testing.T) {
	s := NewPendingStore(time.Minute)
	code, err := s.Put(Registration{Email: "a@b.c"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, err := s.Confirm("a@b.c", "000000"); err != ErrCodeMismatch {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
	// A wrong guess does not consume the entry.
	if _, err := s.Confirm("a@b.c", code); err != nil {
		t.Fatalf("confirm with right code after wrong guess: %v", err)
	}
}

func TestConfirmExpired(t *testing.T) {
	s := NewPendingStore(time.Millisecond)
	code, err := s.Put(Registration{Email: "a@b.c"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := s.Confirm("a@b.c", code); err != ErrNoPending {
		t.Fatalf("expected ErrNoPending for expired entry, got %v", err)
	}
}

func TestPutOverwritesPrevious(t *testing.T) {
	s := NewPendingStore(time.Minute)
	first, err := s.Put(Registration{Email: "a@b.c"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	second, err := s.Put(Registration{Email: "a@b.c"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if first != second {
		if _, err := s.Confirm("a@b.c", first); err == nil {
			t.Fatal("stale code should not confirm")
		}
	}
	if _, err := s.Confirm("a@b.c", second); err != nil {
		t.Fatalf("confirm with latest code: %v", err)
	}
}
