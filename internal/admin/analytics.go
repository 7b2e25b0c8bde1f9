package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/olu-davies/noticehub/internal/analytics"
)

// GET /admin/analytics?from=YYYY-MM-DD
// Without from, the report covers the default trailing window.
func (h *Handler) Analytics(c echo.Context) error {
	var rangeStart *time.Time
	if from := c.QueryParam("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
		}
		rangeStart = &t
	}

	report := analytics.Report(h.store.Snapshot(), rangeStart, time.Now())
	return c.JSON(http.StatusOK, echo.Map{
		"report":      report,
		"fetch_error": fetchErrMessage(h.store),
	})
}
