package preview

import (
	"sync"
	"time"
)

type session struct {
	nav      *Navigator
	lastSeen time.Time
}

// Sessions hands out one navigator per admin session id, so two admins
// moderating at once never share preview state. Every login mints a
// fresh session id, so entries idle past ttl are evicted on the next
// Get; without that the map would grow with every token ever issued.
type Sessions struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	navs map[string]*session
}

// NewSessions returns an empty registry. Entries untouched for ttl are
// forgotten; ttl should match the access-token lifetime.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:  ttl,
		now:  time.Now,
		navs: make(map[string]*session),
	}
}

// Get returns the navigator for sid, creating it on first use.
func (s *Sessions) Get(sid string) *Navigator {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now()
	s.sweepLocked(t)

	e, ok := s.navs[sid]
	if !ok {
		e = &session{nav: &Navigator{}}
		s.navs[sid] = e
	}
	e.lastSeen = t
	return e.nav
}

// Drop forgets the navigator for sid.
func (s *Sessions) Drop(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.navs, sid)
}

// Len reports how many sessions are currently tracked.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.navs)
}

func (s *Sessions) sweepLocked(t time.Time) {
	for sid, e := range s.navs {
		if t.Sub(e.lastSeen) > s.ttl {
			delete(s.navs, sid)
		}
	}
}
