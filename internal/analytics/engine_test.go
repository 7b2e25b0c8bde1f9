package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/olu-davies/noticehub/internal/aggregator"
	"github.com/olu-davies/noticehub/internal/listing"
)

var now = time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

func snapOf(listings ...listing.Listing) aggregator.Snapshot {
	snap := aggregator.Snapshot{
		All:        listings,
		ByCategory: make(map[listing.Category][]listing.Listing),
		FetchedAt:  now,
	}
	for _, l := range listings {
		snap.ByCategory[l.Category] = append(snap.ByCategory[l.Category], l)
	}
	return snap
}

func mk(cat listing.Category, status listing.ApprovalStatus, createdAt time.Time, owner string) listing.Listing {
	return listing.Listing{
		ID:        fmt.Sprintf("%s-%d", cat, createdAt.UnixNano()),
		Category:  cat,
		Status:    status,
		CreatedAt: createdAt,
		Owner:     listing.Owner{DisplayName: owner},
	}
}

func TestReportStatusAndCategoryCounts(t *testing.T) {
	// 3 jobs (2 approved, 1 pending) and 2 rooms (both declined).
	snap := snapOf(
		mk(listing.CategoryJob, listing.StatusApproved, now, "Ada"),
		mk(listing.CategoryJob, listing.StatusApproved, now.Add(-time.Minute), "Ada"),
		mk(listing.CategoryJob, listing.StatusPending, now.Add(-2*time.Minute), "Grace"),
		mk(listing.CategoryRoom, listing.StatusDeclined, now.Add(-3*time.Minute), "Linus"),
		mk(listing.CategoryRoom, listing.StatusDeclined, now.Add(-4*time.Minute), "Linus"),
	)

	o := Report(snap, nil, now)

	want := StatusCounts{Total: 5, Pending: 1, Approved: 2, Declined: 2}
	if o.Status != want {
		t.Errorf("status counts = %+v, want %+v", o.Status, want)
	}

	wantCats := map[listing.Category]int{
		listing.CategoryJob:             3,
		listing.CategoryRoom:            2,
		listing.CategoryMarket:          0,
		listing.CategoryEvent:           0,
		listing.CategoryTravelCompanion: 0,
	}
	for cat, n := range wantCats {
		if o.Categories[cat] != n {
			t.Errorf("category %s = %d, want %d", cat, o.Categories[cat], n)
		}
	}
	if len(o.Categories) != 5 {
		t.Errorf("category map must cover all 5 categories, got %d", len(o.Categories))
	}

	// Invariant: statuses and categories both sum to the total.
	if o.Status.Pending+o.Status.Approved+o.Status.Declined != o.Status.Total {
		t.Error("status counts do not sum to total")
	}
	sum := 0
	for _, n := range o.Categories {
		sum += n
	}
	if sum != o.Status.Total {
		t.Error("category counts do not sum to total")
	}
}

func TestDailySeriesSevenDayWindow(t *testing.T) {
	// 10 listings, all created today, over a 7-day range.
	var listings []listing.Listing
	for i := 0; i < 10; i++ {
		listings = append(listings, mk(listing.CategoryMarket, listing.StatusApproved,
			now.Add(-time.Duration(i)*time.Minute), "Ada"))
	}
	from := now.AddDate(0, 0, -6)
	o := Report(snapOf(listings...), &from, now)

	if len(o.DailySeries) != 7 {
		t.Fatalf("series length = %d, want 7", len(o.DailySeries))
	}
	for i := 0; i < 6; i++ {
		if o.DailySeries[i].Count != 0 {
			t.Errorf("day %d count = %d, want 0", i, o.DailySeries[i].Count)
		}
	}
	if last := o.DailySeries[6]; last.Count != 10 || last.Day != "2026-08-29" {
		t.Errorf("last bucket = %+v, want 10 on 2026-08-29", last)
	}
	if o.Trend != 100 {
		t.Errorf("trend = %d, want 100", o.Trend)
	}
}

func TestDailySeriesDefaultWindow(t *testing.T) {
	o := Report(snapOf(), nil, now)
	if len(o.DailySeries) != DefaultWindowDays {
		t.Fatalf("default series length = %d, want %d", len(o.DailySeries), DefaultWindowDays)
	}
	if o.DailySeries[0].Day != "2026-08-16" {
		t.Errorf("window start = %s, want 2026-08-16", o.DailySeries[0].Day)
	}
	if o.Trend != 0 {
		t.Errorf("trend over an empty board = %d, want 0", o.Trend)
	}
}

func TestDailySeriesExcludesOutOfWindow(t *testing.T) {
	from := now.AddDate(0, 0, -2)
	o := Report(snapOf(
		mk(listing.CategoryEvent, listing.StatusPending, now.AddDate(0, 0, -10), "Old"),
		mk(listing.CategoryEvent, listing.StatusPending, now.AddDate(0, 0, -1), "Ada"),
	), &from, now)

	total := 0
	for _, d := range o.DailySeries {
		total += d.Count
	}
	if total != 1 {
		t.Errorf("in-window count = %d, want 1 (old listing excluded)", total)
	}
	if len(o.DailySeries) != 3 {
		t.Errorf("series length = %d, want 3", len(o.DailySeries))
	}
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name       string
		prev, last int
		want       int
	}{
		{"both zero", 0, 0, 0},
		{"previous zero", 0, 4, 100},
		{"doubling", 2, 4, 100},
		{"halving", 4, 2, -50},
		{"rounding", 3, 4, 33},
		{"steady", 5, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := []DayCount{{Count: tt.prev}, {Count: tt.last}}
			if got := trend(series); got != tt.want {
				t.Errorf("trend(%d -> %d) = %d, want %d", tt.prev, tt.last, got, tt.want)
			}
		})
	}
}

func TestContributorsRanking(t *testing.T) {
	var listings []listing.Listing
	// 10 distinct posters; "Ada" posts 3 times, "Grace" twice, one
	// anonymous listing.
	listings = append(listings,
		mk(listing.CategoryJob, listing.StatusApproved, now, "Ada"),
		mk(listing.CategoryJob, listing.StatusApproved, now, "Ada"),
		mk(listing.CategoryJob, listing.StatusApproved, now, "Ada"),
		mk(listing.CategoryRoom, listing.StatusApproved, now, "Grace"),
		mk(listing.CategoryRoom, listing.StatusApproved, now, "Grace"),
		mk(listing.CategoryMarket, listing.StatusPending, now, ""),
	)
	for i := 0; i < 8; i++ {
		listings = append(listings, mk(listing.CategoryEvent, listing.StatusApproved, now,
			fmt.Sprintf("poster-%d", i)))
	}

	o := Report(snapOf(listings...), nil, now)

	if len(o.Contributors) > MaxContributors {
		t.Fatalf("ranking has %d entries, cap is %d", len(o.Contributors), MaxContributors)
	}
	if o.Contributors[0].Name != "Ada" || o.Contributors[0].Count != 3 {
		t.Errorf("top contributor = %+v, want Ada with 3", o.Contributors[0])
	}
	if o.Contributors[1].Name != "Grace" || o.Contributors[1].Count != 2 {
		t.Errorf("second contributor = %+v, want Grace with 2", o.Contributors[1])
	}
	// Ties keep first-seen order: the anonymous listing was seen before
	// the single-post names.
	if o.Contributors[2].Name != listing.UnknownOwner {
		t.Errorf("third contributor = %q, want %q", o.Contributors[2].Name, listing.UnknownOwner)
	}
	for i := 1; i < len(o.Contributors); i++ {
		if o.Contributors[i].Count > o.Contributors[i-1].Count {
			t.Fatal("ranking is not non-increasing by count")
		}
	}
}
