package models

import (
	"time"

	"github.com/ashishpawar00/KeywordResearchTool/pkg/util"
)

// Origin tags where a fetched series came from.
type Origin string

const (
	OriginReal      Origin = "real"
	OriginSynthetic Origin = "synthetic"
)

// DemoWindowLabel is reported whenever the synthetic fallback produced the series.
const DemoWindowLabel = "demo (last 3 months)"

// Point is a single interest-over-time observation.
type Point struct {
	Time  time.Time `json:"time"`
	Value int       `json:"value"`
}

// Series is an ordered interest-over-time sequence. Times are strictly
// increasing and values are never negative.
type Series []Point

// Sum returns the total of all values. A zero sum means no signal.
func (s Series) Sum() int {
	total := 0
	for _, p := range s {
		total += p.Value
	}
	return total
}

// Tail returns the last n points (all points when len < n).
func (s Series) Tail(n int) Series {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Dates renders point times as ISO date strings.
func (s Series) Dates() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = util.FormatDate(p.Time)
	}
	return out
}

// Values returns the raw value column.
func (s Series) Values() []int {
	out := make([]int, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// FetchResult is the outcome of one trend fetch. Produced per request and
// consumed immediately; never persisted.
type FetchResult struct {
	Keyword     string `json:"keyword"`
	Series      Series `json:"series"`
	WindowLabel string `json:"window_label"`
	Origin      Origin `json:"origin"`
}

// IsDemo reports whether the series came from the synthetic fallback.
func (r *FetchResult) IsDemo() bool {
	return r.Origin == OriginSynthetic
}

// FetchEvent is the audit record published after every completed fetch.
type FetchEvent struct {
	Keyword     string    `json:"keyword"`
	WindowLabel string    `json:"window_label"`
	Origin      Origin    `json:"origin"`
	Points      int       `json:"points"`
	DurationMs  int64     `json:"duration_ms"`
	RequestedAt time.Time `json:"requested_at"`
}
