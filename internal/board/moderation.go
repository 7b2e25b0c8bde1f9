package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olu-davies/noticehub/internal/alerts"
	"github.com/olu-davies/noticehub/internal/gateway"
	"github.com/olu-davies/noticehub/internal/listing"
)

// Moderator applies approval lifecycle transitions. Pending can go to
// Approved or Declined; after that a decision can only flip between
// the two, never back to Pending. Every write is followed by a full
// rebuild of the affected stores, which is how read-after-write
// consistency is achieved here.
type Moderator struct {
	gw       gateway.Gateway
	stores   []*Store
	notifier *alerts.Notifier
	log      *slog.Logger
}

// NewModerator wires the gateway, every store that must be rebuilt
// after a decision, and the notifier.
func NewModerator(gw gateway.Gateway, notifier *alerts.Notifier, log *slog.Logger, stores ...*Store) *Moderator {
	return &Moderator{gw: gw, stores: stores, notifier: notifier, log: log}
}

// Approve marks the listing approved. Approving an already approved
// listing is a harmless repeat write; the rebuild still runs.
func (m *Moderator) Approve(ctx context.Context, l listing.Listing, decidedBy string) error {
	return m.decide(ctx, l, true, decidedBy)
}

// Decline marks the listing declined.
func (m *Moderator) Decline(ctx context.Context, l listing.Listing, decidedBy string) error {
	return m.decide(ctx, l, false, decidedBy)
}

func (m *Moderator) decide(ctx context.Context, l listing.Listing, approved bool, decidedBy string) error {
	if err := m.gw.SetApproval(ctx, l.Category, l.ID, approved); err != nil {
		return fmt.Errorf("board: set approval for %s/%s: %w", l.Category, l.ID, err)
	}
	decision := "declined"
	if approved {
		decision = "approved"
	}
	m.log.Info("moderation decision", "listing", l.ID, "category", l.Category, "decision", decision)
	m.notifier.NotifyDecision(l, decision, decidedBy)
	m.rebuild(ctx)
	return nil
}

// Delete removes the listing from its collection.
func (m *Moderator) Delete(ctx context.Context, l listing.Listing, decidedBy string) error {
	if err := m.gw.Remove(ctx, l.Category, l.ID); err != nil {
		return fmt.Errorf("board: remove %s/%s: %w", l.Category, l.ID, err)
	}
	m.log.Info("listing deleted", "listing", l.ID, "category", l.Category)
	m.notifier.NotifyDecision(l, "deleted", decidedBy)
	m.rebuild(ctx)
	return nil
}

// rebuild refetches every registered store. A rebuild failure leaves
// that store flagged with its fetch error; the decision itself already
// succeeded, so it is not propagated.
func (m *Moderator) rebuild(ctx context.Context) {
	for _, s := range m.stores {
		if err := s.Refresh(ctx); err != nil {
			m.log.Error("post-decision rebuild failed", "error", err)
		}
	}
}
