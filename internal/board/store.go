// Package board owns the live snapshot state and the moderation
// transitions over it. State lives in an explicit store reduced by
// typed actions and injected into its consumers; there is no ambient
// global snapshot.
package board

import (
	"context"
	"log/slog"
	"sync"

	"github.com/olu-davies/noticehub/internal/aggregator"
)

// ActionKind enumerates the store transitions.
type ActionKind string

const (
	FetchStart   ActionKind = "FETCH_START"
	FetchSuccess ActionKind = "FETCH_SUCCESS"
	FetchFail    ActionKind = "FETCH_FAIL"
)

type action struct {
	kind ActionKind
	snap aggregator.Snapshot
	err  error
}

type state struct {
	snap    aggregator.Snapshot
	loading bool
	err     error
}

// reduce computes the next state. A failed fetch keeps the previous
// snapshot: stale data plus an error beats a blank board.
func reduce(st state, a action) state {
	switch a.kind {
	case FetchStart:
		st.loading = true
	case FetchSuccess:
		st.snap = a.snap
		st.loading = false
		st.err = nil
	case FetchFail:
		st.loading = false
		st.err = a.err
	}
	return st
}

// Store serializes snapshot replacement for one audience (admin sees
// all moderation states, the public store only approved listings).
type Store struct {
	agg   *aggregator.Aggregator
	admin bool
	log   *slog.Logger

	// fetchMu serializes Refresh end to end, not just the state swap:
	// snapshots must be installed in fetch order, or a slow fetch that
	// began before a moderation write could land after the
	// post-decision rebuild and put the pre-decision view back.
	fetchMu sync.Mutex

	mu sync.Mutex
	st state
}

// NewStore builds a store over agg. admin selects whether fetches run
// with full moderation visibility.
func NewStore(agg *aggregator.Aggregator, admin bool, log *slog.Logger) *Store {
	return &Store{agg: agg, admin: admin, log: log}
}

func (s *Store) dispatch(a action) {
	s.mu.Lock()
	s.st = reduce(s.st, a)
	s.mu.Unlock()
}

// Refresh rebuilds the snapshot wholesale. On failure the previous
// snapshot stays visible and the error is retained until the next
// successful fetch. Concurrent Refresh calls run one at a time, in
// arrival order.
func (s *Store) Refresh(ctx context.Context) error {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	s.dispatch(action{kind: FetchStart})
	snap, err := s.agg.FetchAll(ctx, s.admin)
	if err != nil {
		s.dispatch(action{kind: FetchFail, err: err})
		return err
	}
	s.dispatch(action{kind: FetchSuccess, snap: snap})
	return nil
}

// Snapshot returns the current merged view.
func (s *Store) Snapshot() aggregator.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.snap
}

// Err returns the last fetch error, nil after a successful fetch.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.err
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.loading
}
