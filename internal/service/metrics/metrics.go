package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal      *prometheus.CounterVec
	candidateFailures *prometheus.CounterVec
	fetchLatency      prometheus.Histogram
	rateLimitWait     prometheus.Histogram
}

// New creates and registers the fetch metrics.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keywordtool_fetches_total",
				Help: "Completed trend fetches by origin and window",
			},
			[]string{"origin", "timeframe"},
		),
		candidateFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keywordtool_candidate_failures_total",
				Help: "Provider window candidates that failed or returned no signal",
			},
			[]string{"timeframe"},
		),
		fetchLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "keywordtool_fetch_duration_seconds",
				Help:    "End-to-end trend fetch duration",
				Buckets: prometheus.DefBuckets,
			},
		),
		rateLimitWait: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "keywordtool_rate_limit_wait_seconds",
				Help:    "Time requests spent blocked on the fetch gate",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 8, 10, 15},
			},
		),
	}
}

func (r *Recorder) RecordFetch(origin models.Origin, timeframe string) {
	r.fetchesTotal.WithLabelValues(string(origin), timeframe).Inc()
}

func (r *Recorder) RecordFetchLatency(seconds float64) {
	r.fetchLatency.Observe(seconds)
}

func (r *Recorder) RecordRateLimitWait(d time.Duration) {
	r.rateLimitWait.Observe(d.Seconds())
}

func (r *Recorder) RecordCandidateFailure(timeframe string) {
	r.candidateFailures.WithLabelValues(timeframe).Inc()
}
