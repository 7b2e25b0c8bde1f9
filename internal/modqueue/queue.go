// Package modqueue filters a board snapshot into the queue an admin
// works through. Filtering is pure and derived: it is recomputed from
// scratch whenever the snapshot, tab, category filter, or search text
// changes.
package modqueue

import (
	"strings"

	"github.com/olu-davies/noticehub/internal/aggregator"
	"github.com/olu-davies/noticehub/internal/listing"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Filter selects from snap the listings matching one approval-status
// tab, an optional category, and an optional case-insensitive search
// over title and description. Snapshot order (newest first) is kept.
func Filter(snap aggregator.Snapshot, tab listing.ApprovalStatus, category string, search string) []listing.Listing {
	needle := strings.ToLower(strings.TrimSpace(search))

	var out []listing.Listing
	for _, l := range snap.All {
		if l.Status != tab {
			continue
		}
		if category != "" && category != CategoryAll && string(l.Category) != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(l.Title), needle) &&
			!strings.Contains(strings.ToLower(l.Description), needle) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// IndexOf returns the position of id in queue, or -1.
func IndexOf(queue []listing.Listing, id string) int {
	for i, l := range queue {
		if l.ID == id {
			return i
		}
	}
	return -1
}
