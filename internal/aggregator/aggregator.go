// Package aggregator merges the per-category collections into one
// typed snapshot. It is the ingestion boundary: the store's optional
// approval boolean and the encoded owner descriptor are normalized
// here, exactly once, so nothing downstream re-interprets raw fields.
package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/olu-davies/noticehub/internal/gateway"
	"github.com/olu-davies/noticehub/internal/listing"
)

// Aggregator fetches all configured sources and produces snapshots.
type Aggregator struct {
	gw  gateway.Gateway
	log *slog.Logger
	now func() time.Time
}

// New returns an aggregator over the given gateway.
func New(gw gateway.Gateway, log *slog.Logger) *Aggregator {
	return &Aggregator{gw: gw, log: log, now: time.Now}
}

// FetchAll pulls every category sequentially and merges the results.
// Admins see all listings; everyone else only approved ones.
//
// The fetch is all-or-nothing: the first failing source aborts the
// whole operation and no partial snapshot is produced. The board feed
// is treated as one transactional unit, so callers keep showing their
// previous snapshot alongside the error.
func (a *Aggregator) FetchAll(ctx context.Context, isAdmin bool) (Snapshot, error) {
	snap := Snapshot{
		ByCategory: make(map[listing.Category][]listing.Listing, len(listing.Categories)),
		FetchedAt:  a.now(),
	}

	for _, cat := range listing.Categories {
		docs, err := a.gw.ListByCategory(ctx, cat, !isAdmin)
		if err != nil {
			a.log.Error("category fetch failed, aborting aggregation",
				"category", cat, "error", err)
			return Snapshot{}, fmt.Errorf("aggregator: fetch %s: %w", cat, err)
		}

		slice := make([]listing.Listing, 0, len(docs))
		for _, doc := range docs {
			slice = append(slice, normalize(cat, doc))
		}
		snap.ByCategory[cat] = slice
		snap.All = append(snap.All, slice...)
	}

	// Each source is already newest-first; the merged feed must be too.
	sort.SliceStable(snap.All, func(i, j int) bool {
		return snap.All[i].CreatedAt.After(snap.All[j].CreatedAt)
	})

	a.log.Debug("aggregation complete", "total", snap.Len(), "admin", isAdmin)
	return snap, nil
}

// normalize tags one raw document with its category and resolves the
// tri-state approval and owner fields.
func normalize(cat listing.Category, doc gateway.Document) listing.Listing {
	return listing.Listing{
		ID:          doc.ID,
		Category:    cat,
		Title:       doc.Title,
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		Status:      listing.StatusFromStored(doc.Approved),
		Owner:       listing.ParseOwner(doc.Owner),
		Attrs:       doc.Attrs,
		Images:      doc.Images,
	}
}
