package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shashatv/vod-backend/internal/repository"
)

// StatsHandler serves the admin statistics snapshot.
type StatsHandler struct {
	Stats *repository.StatsRepo
}

func NewStatsHandler(r *repository.StatsRepo) *StatsHandler {
	return &StatsHandler{Stats: r}
}

// Report returns catalog totals, top lists, per-group counts and recent
// activity in one response.
func (h *StatsHandler) Report(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rep, err := h.Stats.Report(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build report failed"})
	}
	return c.JSON(http.StatusOK, rep)
}
