package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

var errNoUser = errors.New("no authenticated user in context")

// getUserID extracts the authenticated user's id stored by SessionAuth.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get("user_id").(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errNoUser
}

// reqCtx returns a request-scoped context with the standard DB timeout.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseOptionalID reads an optional numeric form/query value into *uint64.
// Empty input yields nil; malformed input yields an error.
func parseOptionalID(s string) (*uint64, error) {
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
