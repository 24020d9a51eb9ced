package utils

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("secret", 42, "user@example.com", RoleUser, 2)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if remaining := time.Until(tok.Exp); remaining < time.Hour || remaining > 2*time.Hour {
		t.Fatalf("unexpected expiry %v", tok.Exp)
	}

	claims, err := ParseSessionToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != RoleUser {
		t.Errorf("Role = %q, want %q", claims.Role, RoleUser)
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("secret-a", 1, "a@b.c", RoleAdmin, 1)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if _, err := ParseSessionToken("secret-b", tok.Token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseSessionToken("secret", "not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestAdminTokenCarriesAdminRole(t *testing.T) {
	tok, err := NewSessionToken("secret", 7, "admin@example.com", RoleAdmin, 1)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	claims, err := ParseSessionToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, RoleAdmin)
	}
}
