package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shashatv/vod-backend/internal/repository"
)

// SearchHandler serves substring search over categories and videos.
type SearchHandler struct {
	Categories *repository.CategoryRepo
	Videos     *repository.VideoRepo
}

func NewSearchHandler(c *repository.CategoryRepo, v *repository.VideoRepo) *SearchHandler {
	return &SearchHandler{Categories: c, Videos: v}
}

// Search matches names/titles case-insensitively by substring. ?q= is the
// query and ?type= selects "category" or "video"; no matches is an empty
// list, not an error.
func (h *SearchHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	switch strings.ToLower(c.QueryParam("type")) {
	case "category":
		out, err := h.Categories.SearchByName(ctx, q)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"categories": out})
	case "video", "":
		out, err := h.Videos.SearchByTitle(ctx, q)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"videos": out})
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be category or video"})
	}
}
