// Package admin is the moderation HTTP surface: the filtered queue,
// the analytics dashboard, the preview navigator, and the
// approve/decline/delete actions.
package admin

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olu-davies/noticehub/internal/aggregator"
	"github.com/olu-davies/noticehub/internal/board"
	"github.com/olu-davies/noticehub/internal/gateway"
	"github.com/olu-davies/noticehub/internal/listing"
	"github.com/olu-davies/noticehub/internal/modqueue"
	"github.com/olu-davies/noticehub/internal/preview"
)

type Handler struct {
	store    *board.Store // admin-visibility snapshot
	public   *board.Store // approved-only snapshot for the open board
	mod      *board.Moderator
	sessions *preview.Sessions
	log      *slog.Logger
}

func NewHandler(store, public *board.Store, mod *board.Moderator, sessions *preview.Sessions, log *slog.Logger) *Handler {
	return &Handler{store: store, public: public, mod: mod, sessions: sessions, log: log}
}

// queueParams are the moderation queue inputs carried on every queue
// and preview request.
type queueParams struct {
	Status   listing.ApprovalStatus
	Category string
	Search   string
}

func parseQueueParams(c echo.Context) (queueParams, error) {
	p := queueParams{
		Status:   listing.StatusPending,
		Category: modqueue.CategoryAll,
		Search:   c.QueryParam("q"),
	}
	if s := c.QueryParam("status"); s != "" {
		switch listing.ApprovalStatus(s) {
		case listing.StatusPending, listing.StatusApproved, listing.StatusDeclined:
			p.Status = listing.ApprovalStatus(s)
		default:
			return p, fmt.Errorf("unknown status %q", s)
		}
	}
	if cat := c.QueryParam("category"); cat != "" {
		if cat != modqueue.CategoryAll && !listing.Category(cat).Valid() {
			return p, fmt.Errorf("unknown category %q", cat)
		}
		p.Category = cat
	}
	return p, nil
}

// queue recomputes the filtered queue from the current snapshot.
func (h *Handler) queue(p queueParams) []listing.Listing {
	return modqueue.Filter(h.store.Snapshot(), p.Status, p.Category, p.Search)
}

// findListing looks the id up in the admin snapshot. When the snapshot
// no longer has it (already deleted elsewhere), a bare reference is
// returned so the gateway can report not-found itself.
func findListing(snap aggregator.Snapshot, cat listing.Category, id string) listing.Listing {
	for _, l := range snap.Slice(cat) {
		if l.ID == id {
			return l
		}
	}
	return listing.Listing{ID: id, Category: cat, Owner: listing.Owner{DisplayName: listing.UnknownOwner}}
}

// writeError maps gateway failures onto HTTP responses. Transport
// failures carry a displayable message and never clobber the snapshot.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing no longer exists"})
	case gateway.IsTransport(err):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// fetchErrMessage surfaces the retained aggregation error, if any, for
// the persistent banner.
func fetchErrMessage(s *board.Store) string {
	if err := s.Err(); err != nil {
		return err.Error()
	}
	return ""
}
