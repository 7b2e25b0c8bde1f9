package aggregator

import (
	"time"

	"github.com/olu-davies/noticehub/internal/listing"
)

// Snapshot is the merged, point-in-time view of the whole board: every
// listing across every category, plus per-category slices for the
// section feeds. A snapshot is never patched; mutations rebuild it
// wholesale, so holders can treat it as immutable.
type Snapshot struct {
	All        []listing.Listing
	ByCategory map[listing.Category][]listing.Listing
	FetchedAt  time.Time
}

// Len returns the total listing count.
func (s Snapshot) Len() int { return len(s.All) }

// CategoryCounts returns a zero-filled count per category. The counts
// always sum to Len().
func (s Snapshot) CategoryCounts() map[listing.Category]int {
	counts := make(map[listing.Category]int, len(listing.Categories))
	for _, cat := range listing.Categories {
		counts[cat] = len(s.ByCategory[cat])
	}
	return counts
}

// Slice returns the listings of one category, newest first.
func (s Snapshot) Slice(cat listing.Category) []listing.Listing {
	return s.ByCategory[cat]
}
