package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shashatv/vod-backend/internal/repository"
)

// ComplaintHandler serves the user feedback ledger. Users append, admins
// read; nothing is ever edited or removed.
type ComplaintHandler struct {
	Complaints *repository.ComplaintRepo
}

func NewComplaintHandler(r *repository.ComplaintRepo) *ComplaintHandler {
	return &ComplaintHandler{Complaints: r}
}

type complaintReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create appends a complaint on behalf of the calling user.
func (h *ComplaintHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req complaintReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cp, err := h.Complaints.Create(ctx, uid, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrMissingFields) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and description are required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create complaint failed"})
	}
	return c.JSON(http.StatusCreated, cp)
}

// ListRecent returns the newest complaints for the back office.
func (h *ComplaintHandler) ListRecent(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Complaints.ListRecent(ctx, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}
