package preview

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/olu-davies/noticehub/internal/listing"
)

func queueOf(ids ...string) []listing.Listing {
	out := make([]listing.Listing, len(ids))
	for i, id := range ids {
		out[i] = listing.Listing{ID: id}
	}
	return out
}

func TestOpenAndResolve(t *testing.T) {
	nav := &Navigator{}
	queue := queueOf("a", "b", "c")

	if nav.Open(queue, "missing") {
		t.Error("opening an id not in the queue must fail")
	}
	if !nav.Open(queue, "b") {
		t.Fatal("open failed")
	}

	item, idx, ok := nav.Resolve(queue)
	if !ok || item.ID != "b" || idx != 1 {
		t.Errorf("resolved %s at %d (ok=%v), want b at 1", item.ID, idx, ok)
	}
}

func TestCyclicLaw(t *testing.T) {
	// Calling Next exactly total times returns to the starting item.
	for size := 1; size <= 5; size++ {
		t.Run(fmt.Sprintf("size-%d", size), func(t *testing.T) {
			ids := make([]string, size)
			for i := range ids {
				ids[i] = fmt.Sprintf("item-%d", i)
			}
			queue := queueOf(ids...)

			nav := &Navigator{}
			nav.Open(queue, ids[0])
			for i := 0; i < size; i++ {
				nav.Next(queue)
			}
			item, _, ok := nav.Resolve(queue)
			if !ok || item.ID != ids[0] {
				t.Errorf("after %d Next calls current = %s, want %s", size, item.ID, ids[0])
			}
		})
	}
}

func TestPrevWrapsAround(t *testing.T) {
	queue := queueOf("a", "b", "c")
	nav := &Navigator{}
	nav.Open(queue, "a")

	nav.Prev(queue)
	item, idx, _ := nav.Resolve(queue)
	if item.ID != "c" || idx != 2 {
		t.Errorf("Prev from first = %s at %d, want c at 2", item.ID, idx)
	}

	nav.Next(queue)
	if item, _, _ := nav.Resolve(queue); item.ID != "a" {
		t.Errorf("Next from last = %s, want a", item.ID)
	}
}

func TestStepsIgnoredWhenClosedOrEmpty(t *testing.T) {
	nav := &Navigator{}
	nav.Next(queueOf("a"))
	if nav.IsOpen() {
		t.Error("Next on a closed navigator must not open it")
	}

	nav.Open(queueOf("a"), "a")
	nav.Next(nil)
	if nav.IsOpen() {
		t.Error("an empty queue closes the preview")
	}
}

func TestResolveSurvivesReordering(t *testing.T) {
	nav := &Navigator{}
	nav.Open(queueOf("a", "b", "c"), "c")

	// The queue reorders; identity wins over position.
	item, idx, ok := nav.Resolve(queueOf("c", "a", "b"))
	if !ok || item.ID != "c" || idx != 0 {
		t.Errorf("resolved %s at %d, want c at 0", item.ID, idx)
	}
}

func TestResolveFallsBackToSamePosition(t *testing.T) {
	// Five items, current at position 2; that item is deleted. The
	// item now occupying position 2 takes over.
	nav := &Navigator{}
	nav.Open(queueOf("a", "b", "c", "d", "e"), "c")

	item, idx, ok := nav.Resolve(queueOf("a", "b", "d", "e"))
	if !ok || item.ID != "d" || idx != 2 {
		t.Errorf("fallback resolved %s at %d, want d at 2", item.ID, idx)
	}
}

func TestResolveClampsToLastPosition(t *testing.T) {
	nav := &Navigator{}
	nav.Open(queueOf("a", "b", "c"), "c")

	// Current was last; the shrunken queue clamps to its new tail.
	item, idx, ok := nav.Resolve(queueOf("a"))
	if !ok || item.ID != "a" || idx != 0 {
		t.Errorf("clamped to %s at %d, want a at 0", item.ID, idx)
	}
}

func TestResolveClosesOnEmptyQueue(t *testing.T) {
	nav := &Navigator{}
	nav.Open(queueOf("a"), "a")

	if _, _, ok := nav.Resolve(nil); ok {
		t.Error("resolve against an empty queue should report closed")
	}
	if nav.IsOpen() {
		t.Error("navigator must close itself when the queue empties")
	}
}

func TestActionForKey(t *testing.T) {
	tests := []struct {
		key    string
		want   Action
		wantOK bool
	}{
		{"ArrowLeft", ActionPrev, true},
		{"ArrowRight", ActionNext, true},
		{"a", ActionApprove, true},
		{"d", ActionDecline, true},
		{"Escape", ActionClose, true},
		{"x", "", false},
		{"A", "", false},
	}
	for _, tt := range tests {
		got, ok := ActionForKey(tt.key, false)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ActionForKey(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}

	// Shortcuts never fire while typing in a text input.
	if _, ok := ActionForKey("a", true); ok {
		t.Error("keys inside a text input must be ignored")
	}
}

// Requests from the same session may land in parallel; run this under
// the race detector.
func TestNavigatorConcurrentUse(t *testing.T) {
	nav := &Navigator{}
	queue := queueOf("a", "b", "c")
	if !nav.Open(queue, "a") {
		t.Fatal("open failed")
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				switch w % 4 {
				case 0:
					nav.Next(queue)
				case 1:
					nav.Prev(queue)
				case 2:
					nav.Resolve(queue)
				default:
					nav.Open(queue, "b")
				}
			}
		}(w)
	}
	wg.Wait()

	if item, _, ok := nav.Resolve(queue); !ok || item.ID == "" {
		t.Error("navigator lost its current item under concurrent use")
	}
}

func TestSessionsIsolation(t *testing.T) {
	sessions := NewSessions(time.Hour)
	queue := queueOf("a", "b")

	sessions.Get("s1").Open(queue, "a")
	if sessions.Get("s2").IsOpen() {
		t.Error("sessions must not share navigator state")
	}
	if !sessions.Get("s1").IsOpen() {
		t.Error("navigator should persist across Get calls")
	}

	sessions.Drop("s1")
	if sessions.Get("s1").IsOpen() {
		t.Error("dropped session should start fresh")
	}
}

func TestSessionsEvictIdleEntries(t *testing.T) {
	sessions := NewSessions(time.Hour)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	queue := queueOf("a")
	sessions.Get("old").Open(queue, "a")
	sessions.Get("fresh")
	if sessions.Len() != 2 {
		t.Fatalf("tracked sessions = %d, want 2", sessions.Len())
	}

	// "fresh" stays in use; "old" goes idle past the TTL.
	now = now.Add(30 * time.Minute)
	sessions.Get("fresh")
	now = now.Add(45 * time.Minute)
	sessions.Get("fresh")

	if sessions.Len() != 1 {
		t.Errorf("tracked sessions = %d, want 1 after eviction", sessions.Len())
	}
	if sessions.Get("old").IsOpen() {
		t.Error("an evicted session must start fresh on its next request")
	}
}
