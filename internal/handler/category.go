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

// CategoryHandler serves the category forest endpoints. Writes are
// admin-only; the browse endpoints are public.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
	Store      storage.Uploader
}

func NewCategoryHandler(r *repository.CategoryRepo, store storage.Uploader) *CategoryHandler {
	return &CategoryHandler{Categories: r, Store: store}
}

// uploadFormFile stores the named multipart file in the blob store and
// returns its public URL. A missing file yields ("", nil).
func uploadFormFile(c echo.Context, store storage.Uploader, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		// echo wraps missing form files in a 400 HTTPError.
		if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusBadRequest {
			return "", nil
		}
		return "", err
	}
	if store == nil {
		return "", storage.ErrUploadFailed
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ctx, cancel := reqCtx(c)
	defer cancel()
	return store.Upload(ctx, fh.Filename, src)
}

// Create adds a category. The request is multipart: name and description as
// form values, parent_id optional, image file optional.
func (h *CategoryHandler) Create(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	parentID, err := parseOptionalID(c.FormValue("parent_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid parent_id"})
	}

	imageURL, err := uploadFormFile(c, h.Store, "image")
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "image upload failed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cat, err := h.Categories.Create(ctx, name, c.FormValue("description"), imageURL, parentID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrParentNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "parent category not found"})
		case errors.Is(err, repository.ErrDuplicateName):
			return c.JSON(http.StatusConflict, echo.Map{"error": "category name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create category failed"})
	}
	return c.JSON(http.StatusCreated, cat)
}

// Get returns one category with its derived child list.
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, cat)
}

// Delete removes a category. Descendants and attached videos are left in
// place; child lists are derived, so the former parent heals on next read.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted"})
}

// Roots lists all parentless categories.
func (h *CategoryHandler) Roots(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cats, err := h.Categories.ListRoots(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, cats)
}

// Subcategories lists the direct children of a category. An existing
// category with no children yields an empty list, not an error.
func (h *CategoryHandler) Subcategories(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cats, err := h.Categories.ListChildren(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, cats)
}

// Tree returns the nested category tree with per-node video counts. An
// optional ?root_id= narrows the result to one subtree.
func (h *CategoryHandler) Tree(c echo.Context) error {
	rootID, err := parseOptionalID(c.QueryParam("root_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid root_id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	tree, err := h.Categories.Tree(ctx, rootID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, tree)
}

// Leaves lists the categories without subcategories, the only ones videos
// normally attach to.
func (h *CategoryHandler) Leaves(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cats, err := h.Categories.Leaves(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, cats)
}
