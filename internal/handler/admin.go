package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shashatv/vod-backend/internal/config"
	"github.com/shashatv/vod-backend/internal/repository"
	"github.com/shashatv/vod-backend/internal/utils"
)

// AdminHandler serves the back-office identity endpoints. Admin sessions
// are plain JWTs: unlike users, admins are not limited to one concurrent
// session and carry no registry entry.
type AdminHandler struct {
	Cfg    config.Config
	Admins *repository.AdminRepo
}

func NewAdminHandler(cfg config.Config, a *repository.AdminRepo) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Admins: a}
}

type adminCredsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an admin account.
func (h *AdminHandler) Register(c echo.Context) error {
	var req adminCredsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Admins.Create(ctx, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create admin failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "admin created successfully", "admin_id": id})
}

// Login verifies credentials and returns an admin session token.
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminCredsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, a.ID, a.Email, utils.RoleAdmin, h.Cfg.SessionTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"session": tokenPart{Token: tok.Token, Expires: tok.Exp},
		"admin":   echo.Map{"id": a.ID, "email": a.Email},
	})
}

// Profile returns the authenticated admin's record.
func (h *AdminHandler) Profile(c echo.Context) error {
	id, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, a)
}
