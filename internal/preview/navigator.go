// Package preview implements cyclic browsing over the current
// moderation queue. The current item is tracked by listing identity,
// not by position, so it survives the queue shrinking or reordering
// underneath it as items are approved, declined, or deleted.
package preview

import (
	"sync"

	"github.com/olu-davies/noticehub/internal/listing"
	"github.com/olu-davies/noticehub/internal/modqueue"
)

// Navigator tracks one admin's current preview item. The zero value is
// a closed navigator. All methods are safe for concurrent use; requests
// from the same session can land in parallel.
type Navigator struct {
	mu        sync.Mutex
	open      bool
	currentID string
	lastIndex int // position of currentID in the queue at last resolve
}

// Open points the navigator at id, if id is in the queue.
func (n *Navigator) Open(queue []listing.Listing, id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	i := modqueue.IndexOf(queue, id)
	if i < 0 {
		return false
	}
	n.open = true
	n.currentID = queue[i].ID
	n.lastIndex = i
	return true
}

// Close clears the current item.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closeLocked()
}

func (n *Navigator) closeLocked() {
	n.open = false
	n.currentID = ""
	n.lastIndex = 0
}

// IsOpen reports whether a preview is active.
func (n *Navigator) IsOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.open
}

// Resolve re-binds the navigator against a freshly recomputed queue and
// returns the current item with its display position. If the previous
// item is still present it stays current (its index may shift). If it
// is gone, the item now occupying the same position takes over; an
// empty queue closes the preview.
func (n *Navigator) Resolve(queue []listing.Listing) (listing.Listing, int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.resolveLocked(queue)
}

func (n *Navigator) resolveLocked(queue []listing.Listing) (listing.Listing, int, bool) {
	if !n.open {
		return listing.Listing{}, 0, false
	}
	if len(queue) == 0 {
		n.closeLocked()
		return listing.Listing{}, 0, false
	}

	if i := modqueue.IndexOf(queue, n.currentID); i >= 0 {
		n.lastIndex = i
		return queue[i], i, true
	}

	// Stale reference: fall back to whatever sits at the old position.
	pos := n.lastIndex
	if pos >= len(queue) {
		pos = len(queue) - 1
	}
	if pos < 0 {
		pos = 0
	}
	n.currentID = queue[pos].ID
	n.lastIndex = pos
	return queue[pos], pos, true
}

// Next advances to the following queue item, wrapping at the end.
// No-op on an empty queue or a closed preview.
func (n *Navigator) Next(queue []listing.Listing) {
	n.step(queue, +1)
}

// Prev moves to the preceding queue item, wrapping at the start.
func (n *Navigator) Prev(queue []listing.Listing) {
	n.step(queue, -1)
}

func (n *Navigator) step(queue []listing.Listing, delta int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, _, ok := n.resolveLocked(queue); !ok {
		return
	}
	total := len(queue)
	pos := (n.lastIndex + delta + total) % total
	n.currentID = queue[pos].ID
	n.lastIndex = pos
}
