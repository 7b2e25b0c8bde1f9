package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olu-davies/noticehub/internal/listing"
	"github.com/olu-davies/noticehub/internal/preview"
)

// previewState is what the preview pane renders: the current item and
// its display position within the filtered queue.
type previewState struct {
	Open  bool             `json:"open"`
	Index int              `json:"index"`
	Total int              `json:"total"`
	Item  *listing.Listing `json:"item,omitempty"`
}

func (h *Handler) nav(c echo.Context) *preview.Navigator {
	sid, _ := c.Get("sid").(string)
	return h.sessions.Get(sid)
}

func (h *Handler) previewResponse(c echo.Context, nav *preview.Navigator, queue []listing.Listing) error {
	item, idx, ok := nav.Resolve(queue)
	state := previewState{Open: ok, Index: idx, Total: len(queue)}
	if ok {
		state.Item = &item
	}
	return c.JSON(http.StatusOK, state)
}

// GET /admin/preview?status=&category=&q=
func (h *Handler) Preview(c echo.Context) error {
	p, err := parseQueueParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.previewResponse(c, h.nav(c), h.queue(p))
}

type openRequest struct {
	ID string `json:"id"`
}

// POST /admin/preview/open
func (h *Handler) PreviewOpen(c echo.Context) error {
	p, err := parseQueueParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	req := new(openRequest)
	if err := c.Bind(req); err != nil || req.ID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing id required"})
	}

	nav := h.nav(c)
	queue := h.queue(p)
	if !nav.Open(queue, req.ID) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not in the current queue"})
	}
	return h.previewResponse(c, nav, queue)
}

// POST /admin/preview/next
func (h *Handler) PreviewNext(c echo.Context) error {
	return h.previewStep(c, preview.ActionNext)
}

// POST /admin/preview/prev
func (h *Handler) PreviewPrev(c echo.Context) error {
	return h.previewStep(c, preview.ActionPrev)
}

// POST /admin/preview/close
func (h *Handler) PreviewClose(c echo.Context) error {
	h.nav(c).Close()
	return c.JSON(http.StatusOK, previewState{})
}

type keyRequest struct {
	Key         string `json:"key"`
	InTextInput bool   `json:"in_text_input"`
}

// POST /admin/preview/key — the keyboard shortcut contract. Arrows
// browse, a approves, d declines, Escape closes; anything else (or any
// key typed into a text input) is ignored.
func (h *Handler) PreviewKey(c echo.Context) error {
	p, err := parseQueueParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	req := new(keyRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	nav := h.nav(c)
	action, ok := preview.ActionForKey(req.Key, req.InTextInput)
	if !ok || !nav.IsOpen() {
		return h.previewResponse(c, nav, h.queue(p))
	}
	return h.applyAction(c, p, action)
}

func (h *Handler) previewStep(c echo.Context, action preview.Action) error {
	p, err := parseQueueParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.applyAction(c, p, action)
}

// applyAction runs one navigator or moderation action, then resolves
// against the (possibly rebuilt) queue so a decided item is replaced by
// whatever now occupies its position.
func (h *Handler) applyAction(c echo.Context, p queueParams, action preview.Action) error {
	nav := h.nav(c)
	queue := h.queue(p)

	switch action {
	case preview.ActionNext:
		nav.Next(queue)
	case preview.ActionPrev:
		nav.Prev(queue)
	case preview.ActionClose:
		nav.Close()
	case preview.ActionApprove, preview.ActionDecline:
		current, _, ok := nav.Resolve(queue)
		if !ok {
			break
		}
		var err error
		if action == preview.ActionApprove {
			err = h.mod.Approve(c.Request().Context(), current, h.decidedBy(c))
		} else {
			err = h.mod.Decline(c.Request().Context(), current, h.decidedBy(c))
		}
		if err != nil {
			return writeError(c, err)
		}
		// The decision rebuilt the snapshot; recompute before resolving.
		queue = h.queue(p)
	}
	return h.previewResponse(c, nav, queue)
}
