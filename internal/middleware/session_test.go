package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shashatv/vod-backend/internal/auth"
	"github.com/shashatv/vod-backend/internal/utils"
)

const testSecret = "test-secret"

func runSessionAuth(t *testing.T, registry *auth.SessionRegistry, authorization string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := SessionAuth(testSecret, registry)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec, c
}

func TestSessionAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := runSessionAuth(t, auth.NewSessionRegistry(), "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuthRejectsInvalidToken(t *testing.T) {
	rec, _ := runSessionAuth(t, auth.NewSessionRegistry(), "Bearer not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuthRejectsUnboundUserToken(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, 1, "u@example.com", utils.RoleUser, 1)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	// Token verifies but was never bound in the registry.
	rec, _ := runSessionAuth(t, auth.NewSessionRegistry(), "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuthAcceptsActiveUserToken(t *testing.T) {
	registry := auth.NewSessionRegistry()
	tok, err := utils.NewSessionToken(testSecret, 1, "u@example.com", utils.RoleUser, 1)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if err := registry.Bind(1, tok.Token); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	rec, c := runSessionAuth(t, registry, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if id, _ := c.Get("user_id").(uint64); id != 1 {
		t.Errorf("user_id = %v, want 1", c.Get("user_id"))
	}
	if role, _ := c.Get("role").(string); role != utils.RoleUser {
		t.Errorf("role = %v", c.Get("role"))
	}
}

func TestSessionAuthRejectsRevokedToken(t *testing.T) {
	registry := auth.NewSessionRegistry()
	tok, err := utils.NewSessionToken(testSecret, 1, "u@example.com", utils.RoleUser, 1)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if err := registry.Bind(1, tok.Token); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	registry.Revoke(1)

	rec, _ := runSessionAuth(t, registry, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuthAdminSkipsRegistry(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, 9, "a@example.com", utils.RoleAdmin, 1)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	// No registry entry: admin tokens are not session-bound.
	rec, c := runSessionAuth(t, auth.NewSessionRegistry(), "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if role, _ := c.Get("role").(string); role != utils.RoleAdmin {
		t.Errorf("role = %v", c.Get("role"))
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role string, allowed ...string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != "" {
			c.Set("role", role)
		}
		h := RequireRole(allowed...)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := h(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		return rec.Code
	}

	if code := run(utils.RoleAdmin, utils.RoleAdmin); code != http.StatusOK {
		t.Errorf("admin on admin route: status = %d, want 200", code)
	}
	if code := run(utils.RoleUser, utils.RoleAdmin); code != http.StatusForbidden {
		t.Errorf("user on admin route: status = %d, want 403", code)
	}
	if code := run("", utils.RoleAdmin); code != http.StatusForbidden {
		t.Errorf("missing role: status = %d, want 403", code)
	}
}
