package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ashishpawar00/KeywordResearchTool/internal/chart"
	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
	drepo "github.com/ashishpawar00/KeywordResearchTool/internal/domain/repository"
	"github.com/ashishpawar00/KeywordResearchTool/internal/service/ratelimit"
	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"
)

// ErrNoData is returned when a fetch produced an empty series. With the
// synthetic fallback in place this should never happen; it is kept as a
// guarded failure mode rather than an assumption.
var ErrNoData = fmt.Errorf("no trend data found")

// Analysis is the complete outcome of one keyword analysis.
type Analysis struct {
	Result   *models.FetchResult
	ChartPNG []byte
	Waited   time.Duration
}

// Analyzer runs the shared pipeline behind the page and analyze handlers:
// rate gate, fetch, chart render, audit.
type Analyzer struct {
	gate        *ratelimit.Gate
	fetcher     *TrendFetcher
	auditor     *Auditor
	metrics     drepo.Metrics
	logger      *applogger.Logger
	chartWidth  int
	chartHeight int
}

func NewAnalyzer(gate *ratelimit.Gate, fetcher *TrendFetcher, auditor *Auditor, m drepo.Metrics, l *applogger.Logger, chartWidth, chartHeight int) *Analyzer {
	return &Analyzer{
		gate:        gate,
		fetcher:     fetcher,
		auditor:     auditor,
		metrics:     m,
		logger:      l,
		chartWidth:  chartWidth,
		chartHeight: chartHeight,
	}
}

// Run analyzes keyword. The keyword must be non-empty; handlers validate
// that before calling. The returned error is either ErrNoData or a chart
// rendering failure.
func (a *Analyzer) Run(ctx context.Context, keyword string) (*Analysis, error) {
	waited, err := a.gate.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if waited > 0 {
		a.logger.Info("rate limit wait", applogger.Duration("waited", waited))
	}
	a.metrics.RecordRateLimitWait(waited)

	start := time.Now()
	res := a.fetcher.Fetch(ctx, keyword)
	// The attempt timestamp advances after every fetch, success or not.
	a.gate.RecordAttempt(time.Now())
	a.metrics.RecordFetchLatency(time.Since(start).Seconds())

	if a.auditor != nil {
		a.auditor.Record(ctx, &models.FetchEvent{
			Keyword:     keyword,
			WindowLabel: res.WindowLabel,
			Origin:      res.Origin,
			Points:      len(res.Series),
			DurationMs:  time.Since(start).Milliseconds(),
			RequestedAt: start.UTC(),
		})
	}

	if len(res.Series) == 0 {
		return nil, ErrNoData
	}

	png, err := chart.Render(res.Series, chart.Title(keyword, res.Origin), a.chartWidth, a.chartHeight)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}

	return &Analysis{Result: res, ChartPNG: png, Waited: waited}, nil
}
