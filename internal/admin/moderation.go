package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olu-davies/noticehub/internal/listing"
)

func (h *Handler) pathListing(c echo.Context) (listing.Listing, bool) {
	cat := listing.Category(c.Param("category"))
	if !cat.Valid() {
		return listing.Listing{}, false
	}
	return findListing(h.store.Snapshot(), cat, c.Param("id")), true
}

func (h *Handler) decidedBy(c echo.Context) string {
	sid, _ := c.Get("sid").(string)
	return sid
}

// POST /admin/listings/:category/:id/approve
func (h *Handler) Approve(c echo.Context) error {
	l, ok := h.pathListing(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}
	if err := h.mod.Approve(c.Request().Context(), l, h.decidedBy(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": l.ID, "status": listing.StatusApproved})
}

// POST /admin/listings/:category/:id/decline
func (h *Handler) Decline(c echo.Context) error {
	l, ok := h.pathListing(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}
	if err := h.mod.Decline(c.Request().Context(), l, h.decidedBy(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": l.ID, "status": listing.StatusDeclined})
}

// DELETE /admin/listings/:category/:id
func (h *Handler) Delete(c echo.Context) error {
	l, ok := h.pathListing(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}
	if err := h.mod.Delete(c.Request().Context(), l, h.decidedBy(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": l.ID, "deleted": true})
}
