package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GET /admin/queue?status=&category=&q=
func (h *Handler) Queue(c echo.Context) error {
	p, err := parseQueueParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	items := h.queue(p)
	return c.JSON(http.StatusOK, echo.Map{
		"items":       items,
		"total":       len(items),
		"status":      p.Status,
		"category":    p.Category,
		"q":           p.Search,
		"fetch_error": fetchErrMessage(h.store),
	})
}

// POST /admin/refresh — the manual retry behind the error banner.
func (h *Handler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.store.Refresh(ctx); err != nil {
		return writeError(c, err)
	}
	if err := h.public.Refresh(ctx); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":      h.store.Snapshot().Len(),
		"fetched_at": h.store.Snapshot().FetchedAt,
	})
}
