package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shashatv/vod-backend/internal/auth"
	"github.com/shashatv/vod-backend/internal/config"
	"github.com/shashatv/vod-backend/internal/mailer"
	"github.com/shashatv/vod-backend/internal/repository"
	"github.com/shashatv/vod-backend/internal/utils"
	"github.com/shashatv/vod-backend/internal/verify"
)

// AuthHandler bundles dependencies for the user registration and session
// endpoints. Registration is two-step: a verification code is mailed first
// and the account is only created once the code is echoed back.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Pending  *verify.PendingStore
	Mailer   *mailer.Mailer
	Sessions *auth.SessionRegistry
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, p *verify.PendingStore, m *mailer.Mailer, s *auth.SessionRegistry) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Pending: p, Mailer: m, Sessions: s}
}

// ----- DTOs -----

type sendCodeReq struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	PushToken   string `json:"push_token"`
}
type verifyEmailReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type pushTokenReq struct {
	PushToken string `json:"push_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// SendVerificationCode stores a pending registration and mails a one-time
// code. A mail delivery failure is reported to the caller but does not drop
// the pending record; the client may retry verification delivery.
func (h *AuthHandler) SendVerificationCode(c echo.Context) error {
	var req sendCodeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" || req.PhoneNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email, password and phone_number are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	exists, err := h.Users.EmailExists(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	}

	code, err := h.Pending.Put(verify.Registration{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		PushToken:   req.PushToken,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create verification code"})
	}

	if err := h.Mailer.SendVerificationCode(req.Email, code); err != nil {
		log.Printf("auth: verification mail to %s failed: %v", req.Email, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "could not send verification email"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "verification code sent to email"})
}

// VerifyEmail checks the code and creates the account.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	reg, err := h.Pending.Confirm(req.Email, strings.TrimSpace(req.Code))
	if err != nil {
		switch {
		case errors.Is(err, verify.ErrNoPending):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no verification request found for this email"})
		case errors.Is(err, verify.ErrCodeMismatch):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid verification code"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}

	hash, err := utils.HashPassword(reg.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, reg.Name, reg.Email, hash, reg.PhoneNumber, reg.PushToken)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		case errors.Is(err, repository.ErrPhoneExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "account created successfully", "user_id": uid})
}

// Login verifies credentials and issues the user's single session token.
// A login while another session is outstanding is rejected; the existing
// session must be logged out first.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, u.Email, utils.RoleUser, h.Cfg.SessionTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	if err := h.Sessions.Bind(u.ID, tok.Token); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "user is already logged in"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"session": tokenPart{Token: tok.Token, Expires: tok.Exp},
		"user":    userPart{ID: u.ID, Name: u.Name, Email: u.Email, PhoneNumber: u.PhoneNumber},
	})
}

// Logout revokes the caller's active session. Revoking an already-revoked
// session is a no-op, so logout always succeeds for an authenticated caller.
func (h *AuthHandler) Logout(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	h.Sessions.Revoke(uid)
	return c.NoContent(http.StatusNoContent)
}

// Profile returns the authenticated user's record.
func (h *AuthHandler) Profile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, u)
}

// UpdatePushToken replaces the caller's push notification token.
func (h *AuthHandler) UpdatePushToken(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req pushTokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.UpdatePushToken(ctx, uid, strings.TrimSpace(req.PushToken)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
