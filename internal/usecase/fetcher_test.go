package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
	drepo "github.com/ashishpawar00/KeywordResearchTool/internal/domain/repository"
	"github.com/ashishpawar00/KeywordResearchTool/internal/service/demo"
	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordFetch(models.Origin, string) {}
func (nopMetrics) RecordFetchLatency(float64)        {}
func (nopMetrics) RecordRateLimitWait(time.Duration) {}
func (nopMetrics) RecordCandidateFailure(string)     {}

type stubSource struct {
	calls   int
	results map[drepo.Timeframe]models.Series
	err     error
}

func (s *stubSource) InterestOverTime(_ context.Context, _ string, tf drepo.Timeframe) (models.Series, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.results[tf], nil
}

func flatSeries(n, value int) models.Series {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, n)
	for i := range s {
		s[i] = models.Point{Time: start.AddDate(0, 0, i), Value: value}
	}
	return s
}

func newFetcher(source drepo.TrendSource, opts ...FetcherOption) *TrendFetcher {
	return NewTrendFetcher(source, demo.NewGenerator(), applogger.Nop(), nopMetrics{}, opts...)
}

func TestFetchFirstWindowWins(t *testing.T) {
	src := &stubSource{results: map[drepo.Timeframe]models.Series{
		drepo.TFWeek: flatSeries(7, 42),
	}}
	res := newFetcher(src).Fetch(context.Background(), "python")

	if res.Origin != models.OriginReal {
		t.Fatalf("origin=%s", res.Origin)
	}
	if res.WindowLabel != "now 7-d" {
		t.Fatalf("label=%q", res.WindowLabel)
	}
	if src.calls != 1 {
		t.Fatalf("later candidates attempted: %d calls", src.calls)
	}
}

func TestFetchSkipsZeroSumWindow(t *testing.T) {
	src := &stubSource{results: map[drepo.Timeframe]models.Series{
		drepo.TFWeek:  flatSeries(7, 0), // no signal
		drepo.TFMonth: flatSeries(30, 5),
	}}
	res := newFetcher(src).Fetch(context.Background(), "python")

	if res.Origin != models.OriginReal || res.WindowLabel != "today 1-m" {
		t.Fatalf("unexpected result: origin=%s label=%q", res.Origin, res.WindowLabel)
	}
	if src.calls != 2 {
		t.Fatalf("calls=%d", src.calls)
	}
}

func TestFetchAllCandidatesFailFallsBack(t *testing.T) {
	src := &stubSource{err: errors.New("quota exceeded")}
	res := newFetcher(src).Fetch(context.Background(), "python")

	if res.Origin != models.OriginSynthetic {
		t.Fatalf("origin=%s", res.Origin)
	}
	if res.WindowLabel != models.DemoWindowLabel {
		t.Fatalf("label=%q", res.WindowLabel)
	}
	if src.calls != 3 {
		t.Fatalf("all three candidates should be tried, got %d", src.calls)
	}
	if len(res.Series) != 91 {
		t.Fatalf("synthetic series has %d points", len(res.Series))
	}
}

func TestFetchNilSourceFallsBack(t *testing.T) {
	// Provider client construction failed; fetch must still succeed.
	res := newFetcher(nil).Fetch(context.Background(), "python")

	if res.Origin != models.OriginSynthetic {
		t.Fatalf("origin=%s", res.Origin)
	}
	if res.Series.Sum() == 0 {
		t.Fatalf("synthetic series should carry signal")
	}
}

func TestFetchMemoizesViaCache(t *testing.T) {
	src := &stubSource{results: map[drepo.Timeframe]models.Series{
		drepo.TFWeek: flatSeries(7, 42),
	}}
	f := newFetcher(src, WithCache(newFakeCache(), time.Minute))

	first := f.Fetch(context.Background(), "python")
	second := f.Fetch(context.Background(), "python")

	if src.calls != 1 {
		t.Fatalf("cache should absorb second fetch, got %d calls", src.calls)
	}
	if first.WindowLabel != second.WindowLabel || len(first.Series) != len(second.Series) {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
}
