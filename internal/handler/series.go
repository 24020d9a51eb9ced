package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shashatv/vod-backend/internal/repository"
	"github.com/shashatv/vod-backend/internal/storage"
)

// SeriesHandler serves series creation and listing plus the combined
// catalog endpoint the mobile client bootstraps from.
type SeriesHandler struct {
	Series     *repository.SeriesRepo
	Videos     *repository.VideoRepo
	Categories *repository.CategoryRepo
	Store      storage.Uploader
}

func NewSeriesHandler(s *repository.SeriesRepo, v *repository.VideoRepo, c *repository.CategoryRepo, store storage.Uploader) *SeriesHandler {
	return &SeriesHandler{Series: s, Videos: v, Categories: c, Store: store}
}

// Create adds a series. Multipart: title and description as form values,
// category_id optional, image file optional.
func (h *SeriesHandler) Create(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	categoryID, err := parseOptionalID(c.FormValue("category_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
	}

	imageURL, err := uploadFormFile(c, h.Store, "image")
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "image upload failed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Series.Create(ctx, title, c.FormValue("description"), imageURL, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "series title already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create series failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// Get returns one series.
func (h *SeriesHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid series id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Series.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "series not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// List returns every series with its category name joined in, newest first.
func (h *SeriesHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Series.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// Catalog returns the root categories, all series and the latest uploads in
// one response so the client can render its start screen with a single call.
func (h *SeriesHandler) Catalog(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	roots, err := h.Categories.ListRoots(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	series, err := h.Series.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	categoryName := c.QueryParam("category")
	if categoryName == "" {
		categoryName = "Movies"
	}
	latest, episodes, err := h.Videos.Latest(ctx, categoryName, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"categories":      roots,
		"series":          series,
		"latest_videos":   latest,
		"latest_episodes": episodes,
	})
}
