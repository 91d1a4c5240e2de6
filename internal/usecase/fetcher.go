package usecase

import (
	"context"
	"time"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
	drepo "github.com/ashishpawar00/KeywordResearchTool/internal/domain/repository"
	"github.com/ashishpawar00/KeywordResearchTool/internal/service/demo"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/cache"
	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"
)

// TrendFetcher retrieves an interest-over-time series for a keyword,
// walking an ordered chain of window candidates and falling back to the
// synthetic generator when the provider yields nothing usable.
//
// Fetch never fails: every error is resolved internally, so callers always
// receive a FetchResult with origin real or synthetic.
type TrendFetcher struct {
	source  drepo.TrendSource // nil when the provider client could not be built
	demo    *demo.Generator
	logger  *applogger.Logger
	metrics drepo.Metrics
	cache   cache.Service // optional memoization
	ttl     time.Duration
	now     func() time.Time
}

// FetcherOption configures a TrendFetcher.
type FetcherOption func(*TrendFetcher)

// NewTrendFetcher builds a fetcher. source may be nil; all fetches then go
// straight to the synthetic fallback.
func NewTrendFetcher(source drepo.TrendSource, gen *demo.Generator, l *applogger.Logger, m drepo.Metrics, opts ...FetcherOption) *TrendFetcher {
	f := &TrendFetcher{
		source:  source,
		demo:    gen,
		logger:  l,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithCache memoizes fetch results per keyword for ttl.
func WithCache(c cache.Service, ttl time.Duration) FetcherOption {
	return func(f *TrendFetcher) {
		f.cache = c
		f.ttl = ttl
	}
}

// WithClock injects the time source. Test hook.
func WithClock(now func() time.Time) FetcherOption {
	return func(f *TrendFetcher) { f.now = now }
}

// Fetch resolves the series for keyword. The caller is responsible for
// rejecting empty keywords before calling.
func (f *TrendFetcher) Fetch(ctx context.Context, keyword string) *models.FetchResult {
	if f.cache != nil {
		var cached models.FetchResult
		if err := f.cache.Get(ctx, cacheKey(keyword), &cached); err == nil {
			f.logger.Debug("trend cache hit", applogger.String("keyword", keyword))
			return &cached
		}
	}

	res := f.fetchUncached(ctx, keyword)

	if f.cache != nil {
		if err := f.cache.Set(ctx, cacheKey(keyword), res, f.ttl); err != nil {
			f.logger.Warn("trend cache set failed", applogger.Error(err))
		}
	}
	return res
}

func (f *TrendFetcher) fetchUncached(ctx context.Context, keyword string) *models.FetchResult {
	if f.source != nil {
		for _, tf := range drepo.CandidateTimeframes() {
			series, err := f.source.InterestOverTime(ctx, keyword, tf)
			if err != nil {
				// One bad window must not abort the others.
				f.logger.Warn("trend window failed",
					applogger.String("keyword", keyword),
					applogger.String("timeframe", string(tf)),
					applogger.Error(err),
				)
				f.metrics.RecordCandidateFailure(string(tf))
				continue
			}
			if len(series) == 0 || series.Sum() == 0 {
				f.logger.Debug("trend window empty",
					applogger.String("keyword", keyword),
					applogger.String("timeframe", string(tf)),
				)
				f.metrics.RecordCandidateFailure(string(tf))
				continue
			}
			f.logger.Info("trend fetch succeeded",
				applogger.String("keyword", keyword),
				applogger.String("timeframe", string(tf)),
				applogger.Int("points", len(series)),
			)
			f.metrics.RecordFetch(models.OriginReal, string(tf))
			return &models.FetchResult{
				Keyword:     keyword,
				Series:      series,
				WindowLabel: string(tf),
				Origin:      models.OriginReal,
			}
		}
	}

	f.logger.Info("falling back to synthetic data", applogger.String("keyword", keyword))
	f.metrics.RecordFetch(models.OriginSynthetic, models.DemoWindowLabel)
	return &models.FetchResult{
		Keyword:     keyword,
		Series:      f.demo.Generate(keyword, f.now()),
		WindowLabel: models.DemoWindowLabel,
		Origin:      models.OriginSynthetic,
	}
}

func cacheKey(keyword string) string {
	return "trend:" + keyword
}
