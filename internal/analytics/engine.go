// Package analytics derives moderation dashboard figures from a board
// snapshot. Everything here is pure: same snapshot and window in, same
// report out.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/olu-davies/noticehub/internal/aggregator"
	"github.com/olu-davies/noticehub/internal/listing"
)

const (
	// DefaultWindowDays is the trailing window used when no explicit
	// range start is given: today plus the 13 days before it.
	DefaultWindowDays = 14

	// MaxContributors caps the contributor ranking.
	MaxContributors = 8
)

// StatusCounts classifies a snapshot by moderation state.
type StatusCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Declined int `json:"declined"`
}

// DayCount is one bucket of the daily series.
type DayCount struct {
	Day   string `json:"day"` // local calendar date, YYYY-MM-DD
	Count int    `json:"count"`
}

// Contributor is one entry of the top-poster ranking.
type Contributor struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Overview is the full analytics report for one snapshot and window.
type Overview struct {
	Status       StatusCounts             `json:"status"`
	Categories   map[listing.Category]int `json:"categories"`
	DailySeries  []DayCount               `json:"daily_series"`
	Trend        int                      `json:"trend"`
	Contributors []Contributor            `json:"contributors"`
}

// Report computes the overview for snap. rangeStart bounds the daily
// series; nil selects the default trailing window ending at now. The
// series always spans every calendar day of the window, zero-filled,
// regardless of where the listings fall.
func Report(snap aggregator.Snapshot, rangeStart *time.Time, now time.Time) Overview {
	o := Overview{
		Categories: snap.CategoryCounts(),
	}

	for _, l := range snap.All {
		o.Status.Total++
		switch l.Status {
		case listing.StatusApproved:
			o.Status.Approved++
		case listing.StatusDeclined:
			o.Status.Declined++
		default:
			o.Status.Pending++
		}
	}

	o.DailySeries = dailySeries(snap.All, rangeStart, now)
	o.Trend = trend(o.DailySeries)
	o.Contributors = topContributors(snap.All)
	return o
}

// startOfDay truncates t to its local calendar date.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dailySeries(all []listing.Listing, rangeStart *time.Time, now time.Time) []DayCount {
	today := startOfDay(now)
	start := today.AddDate(0, 0, -(DefaultWindowDays - 1))
	if rangeStart != nil {
		start = startOfDay(*rangeStart)
	}
	if start.After(today) {
		start = today
	}

	days := int(today.Sub(start).Hours()/24) + 1
	series := make([]DayCount, 0, days)
	index := make(map[string]int, days)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		index[key] = len(series)
		series = append(series, DayCount{Day: key})
	}

	for _, l := range all {
		key := startOfDay(l.CreatedAt.In(now.Location())).Format("2006-01-02")
		if i, ok := index[key]; ok {
			series[i].Count++
		}
	}
	return series
}

// trend is the day-over-day percent change of the last two buckets.
func trend(series []DayCount) int {
	if len(series) < 2 {
		return 0
	}
	last := series[len(series)-1].Count
	prev := series[len(series)-2].Count
	switch {
	case last == 0 && prev == 0:
		return 0
	case prev == 0:
		return 100
	default:
		return int(math.Round(float64(last-prev) / float64(prev) * 100))
	}
}

func topContributors(all []listing.Listing) []Contributor {
	seen := make(map[string]int) // name -> index into ranking
	var ranking []Contributor
	for _, l := range all {
		name := l.Owner.DisplayName
		if name == "" {
			name = listing.UnknownOwner
		}
		if i, ok := seen[name]; ok {
			ranking[i].Count++
			continue
		}
		seen[name] = len(ranking)
		ranking = append(ranking, Contributor{Name: name, Count: 1})
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	if len(ranking) > MaxContributors {
		ranking = ranking[:MaxContributors]
	}
	return ranking
}
