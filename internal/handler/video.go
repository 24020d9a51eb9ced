package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shashatv/vod-backend/internal/config"
	"github.com/shashatv/vod-backend/internal/queue"
	"github.com/shashatv/vod-backend/internal/repository"
	queuepublisher "github.com/shashatv/vod-backend/internal/service"
	"github.com/shashatv/vod-backend/internal/storage"
)

// VideoHandler serves the video catalog endpoints: admin uploads plus the
// user-facing browse, view and favorite operations.
type VideoHandler struct {
	Cfg    config.Config
	Videos *repository.VideoRepo
	Store  storage.Uploader
}

func NewVideoHandler(cfg config.Config, r *repository.VideoRepo, store storage.Uploader) *VideoHandler {
	return &VideoHandler{Cfg: cfg, Videos: r, Store: store}
}

// Create uploads a video. The request is multipart: title, optional
// category_id/series_id form values, a required "video" file and an optional
// "thumbnail" file. The blob upload happens before the catalog insert so a
// failed insert never leaves a catalog row without a file behind it.
func (h *VideoHandler) Create(c echo.Context) error {
	title := c.FormValue("title")
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	categoryID, err := parseOptionalID(c.FormValue("category_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
	}
	seriesID, err := parseOptionalID(c.FormValue("series_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid series_id"})
	}
	if categoryID == nil && seriesID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_id or series_id is required"})
	}

	fh, err := c.FormFile("video")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "video file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read video file"})
	}
	defer src.Close()

	if h.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage not configured"})
	}

	upCtx, upCancel := context.WithTimeout(c.Request().Context(), 2*time.Minute)
	defer upCancel()

	url, err := h.Store.Upload(upCtx, fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "video upload failed"})
	}

	thumbURL, err := uploadFormFile(c, h.Store, "thumbnail")
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "thumbnail upload failed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.Videos.Create(ctx, repository.CreateVideoParams{
		Title:             title,
		Filename:          fh.Filename,
		URL:               url,
		ThumbnailURL:      thumbURL,
		CategoryID:        categoryID,
		SeriesID:          seriesID,
		AllowRootCategory: h.Cfg.AllowRootCategoryVideos,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMissingAttachment):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_id or series_id is required"})
		case errors.Is(err, repository.ErrCategoryNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		case errors.Is(err, repository.ErrRootCategoryForbidden):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "videos may only attach to subcategories"})
		case errors.Is(err, repository.ErrDuplicateEpisode):
			return c.JSON(http.StatusConflict, echo.Map{"error": "an episode with this title already exists in the series"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create video failed"})
	}

	// Fire-and-forget: the upload event feeds the activity consumer and must
	// not delay or fail the response.
	go func(ev queue.VideoUploadedEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		if err := queuepublisher.PublishVideoUploaded(pubCtx, ev); err != nil {
			log.Printf("video: publish upload event for %d failed: %v", ev.VideoID, err)
		}
	}(queue.VideoUploadedEvent{
		VideoID:    v.ID,
		Title:      v.Title,
		CategoryID: v.CategoryID,
		SeriesID:   v.SeriesID,
		URL:        v.URL,
		UploadedAt: v.UploadedAt.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, v)
}

// Get returns one video including its viewer list.
func (h *VideoHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid video id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.Videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "video not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, v)
}

// View records a view for the calling user. Repeat views by the same user
// are acknowledged but never counted twice.
func (h *VideoHandler) View(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid video id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	already, err := h.Videos.RecordView(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "video not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record view failed"})
	}
	if already {
		return c.JSON(http.StatusOK, echo.Map{"message": "view already counted"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "view counted"})
}

// Favorite marks a video as favorited. A second favorite call conflicts.
func (h *VideoHandler) Favorite(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid video id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.Videos.AddToFavorites(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "video not found"})
		case errors.Is(err, repository.ErrAlreadyFavorited):
			return c.JSON(http.StatusConflict, echo.Map{"error": "video already favorited"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "favorite failed"})
	}
	return c.JSON(http.StatusOK, v)
}

// Suggestions returns related videos: same series first, otherwise same
// category, most viewed first. No related videos is an empty list, not 404.
func (h *VideoHandler) Suggestions(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid video id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	vids, err := h.Videos.Suggest(ctx, id, 10)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "video not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, vids)
}

// List filters videos by ?category_id= and/or ?series_id=, newest first.
func (h *VideoHandler) List(c echo.Context) error {
	categoryID, err := parseOptionalID(c.QueryParam("category_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
	}
	seriesID, err := parseOptionalID(c.QueryParam("series_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid series_id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	vids, err := h.Videos.ByCategoryOrSeries(ctx, categoryID, seriesID)
	if err != nil {
		if errors.Is(err, repository.ErrMissingFilter) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_id or series_id is required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, vids)
}

// Latest returns the newest videos of a named category next to the newest
// series episodes, for the home screen.
func (h *VideoHandler) Latest(c echo.Context) error {
	categoryName := c.QueryParam("category")
	if categoryName == "" {
		categoryName = "Movies"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	catVideos, episodes, err := h.Videos.Latest(ctx, categoryName, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"category": categoryName,
		"videos":   catVideos,
		"episodes": episodes,
	})
}
