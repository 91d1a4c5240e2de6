package repository

import (
	"context"
	"time"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
)

// Timeframe is a provider-understood time window, e.g. "now 7-d".
type Timeframe string

const (
	TFWeek        Timeframe = "now 7-d"
	TFMonth       Timeframe = "today 1-m"
	TFThreeMonths Timeframe = "today 3-m"
)

// CandidateTimeframes is the ordered fallback chain the fetcher walks.
func CandidateTimeframes() []Timeframe {
	return []Timeframe{TFWeek, TFMonth, TFThreeMonths}
}

// TrendSource is the external trend-query capability. Implementations may
// fail with provider-specific errors; callers treat any failure as
// retryable-by-fallback.
type TrendSource interface {
	InterestOverTime(ctx context.Context, keyword string, tf Timeframe) (models.Series, error)
}

// HistoryStore persists fetch audit events and serves them back.
type HistoryStore interface {
	Record(ctx context.Context, ev *models.FetchEvent) error
	Recent(ctx context.Context, limit int) ([]models.FetchEvent, error)
}

// EventPublisher pushes fetch audit events to a message backend.
type EventPublisher interface {
	Publish(ctx context.Context, ev *models.FetchEvent) error
	Close() error
}

// Metrics records fetch observability signals.
type Metrics interface {
	RecordFetch(origin models.Origin, timeframe string)
	RecordFetchLatency(seconds float64)
	RecordRateLimitWait(d time.Duration)
	RecordCandidateFailure(timeframe string)
}
