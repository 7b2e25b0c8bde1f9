package board

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olu-davies/noticehub/internal/listing"
)

// PublicHandler serves the open board: approved listings only, straight
// from the public store's snapshot.
type PublicHandler struct {
	store *Store
	log   *slog.Logger
}

func NewPublicHandler(store *Store, log *slog.Logger) *PublicHandler {
	return &PublicHandler{store: store, log: log}
}

// GET /listings — the merged feed across every category.
func (h *PublicHandler) Listings(c echo.Context) error {
	snap := h.store.Snapshot()
	return c.JSON(http.StatusOK, echo.Map{
		"items": snap.All,
		"total": snap.Len(),
	})
}

// GET /listings/:category — one category slice.
func (h *PublicHandler) CategoryListings(c echo.Context) error {
	cat := listing.Category(c.Param("category"))
	if !cat.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}
	items := h.store.Snapshot().Slice(cat)
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"total": len(items),
	})
}
