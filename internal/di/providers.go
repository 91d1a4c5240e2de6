package di

import (
	"context"
	"fmt"
	"time"

	drepo "github.com/ashishpawar00/KeywordResearchTool/internal/domain/repository"
	"github.com/ashishpawar00/KeywordResearchTool/internal/handler/api"
	"github.com/ashishpawar00/KeywordResearchTool/internal/handler/web"
	internalrepo "github.com/ashishpawar00/KeywordResearchTool/internal/repository"
	"github.com/ashishpawar00/KeywordResearchTool/internal/service/demo"
	"github.com/ashishpawar00/KeywordResearchTool/internal/service/metrics"
	"github.com/ashishpawar00/KeywordResearchTool/internal/service/ratelimit"
	"github.com/ashishpawar00/KeywordResearchTool/internal/service/stream"
	"github.com/ashishpawar00/KeywordResearchTool/internal/service/trends"
	"github.com/ashishpawar00/KeywordResearchTool/internal/usecase"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/cache"
	pkgch "github.com/ashishpawar00/KeywordResearchTool/pkg/clickhouse"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/config"
	xhttp "github.com/ashishpawar00/KeywordResearchTool/pkg/http"
	pkgkafka "github.com/ashishpawar00/KeywordResearchTool/pkg/kafka"
	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideGate creates the shared fetch rate gate.
func ProvideGate(cfg *config.Config) *ratelimit.Gate {
	opts := []ratelimit.Option{}
	if cfg.RateLimit.Exclusive {
		opts = append(opts, ratelimit.WithExclusive())
	}
	return ratelimit.New(cfg.RateLimit.Interval, opts...)
}

// ProvideTrendSource creates the trends provider client.
func ProvideTrendSource(cfg *config.Config) drepo.TrendSource {
	return trends.New(cfg.Trends.BaseURL, cfg.Trends.Language, cfg.Trends.Timezone, cfg.Trends.Timeout)
}

// ProvideCache creates the cache backend named by config, nil for "none".
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "none":
		return nil, nil
	case "memory":
		return cache.NewMemoryCache(1024, time.Minute), nil
	case "redis":
		return cache.NewRedisCache(cache.RedisConfig{
			Host:     cfg.Cache.Redis.Host,
			Port:     cfg.Cache.Redis.Port,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// ProvideFetcher creates the trend fetcher, caching results when a cache
// backend is configured.
func ProvideFetcher(cfg *config.Config, source drepo.TrendSource, l *applogger.Logger, m drepo.Metrics, cacheSvc cache.Service) *usecase.TrendFetcher {
	opts := []usecase.FetcherOption{}
	if cacheSvc != nil {
		opts = append(opts, usecase.WithCache(cacheSvc, cfg.Cache.TTL))
	}
	return usecase.NewTrendFetcher(source, demo.NewGenerator(), l, m, opts...)
}

// historySinks bundles the optional audit backends so wire can pass them
// around as one value.
type historySinks struct {
	publisher drepo.EventPublisher
	store     drepo.HistoryStore
	chClient  *pkgch.Client
}

// ProvideHistorySinks creates the audit backend named by config. At most
// one of publisher/store is set.
func ProvideHistorySinks(cfg *config.Config) (*historySinks, error) {
	switch cfg.History.Backend {
	case "none":
		return &historySinks{}, nil

	case "kafka":
		producer, err := pkgkafka.NewProducer(pkgkafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			RequiredAcks: cfg.Kafka.RequiredAcks,
			Compression:  cfg.Kafka.Compression,
			MaxAttempts:  cfg.Kafka.Producer.MaxAttempts,
			BatchSize:    cfg.Kafka.Producer.BatchSize,
			BatchTimeout: cfg.Kafka.Producer.Linger,
			WriteTimeout: cfg.Kafka.Producer.WriteTimeout,
			ReadTimeout:  cfg.Kafka.Producer.ReadTimeout,
			Async:        cfg.Kafka.Producer.Async,
		})
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		return &historySinks{
			publisher: internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic),
		}, nil

	case "clickhouse":
		client, err := pkgch.NewClient(pkgch.ClientConfig{
			Host:         cfg.ClickHouse.Host,
			Port:         cfg.ClickHouse.Port,
			Database:     cfg.ClickHouse.Database,
			User:         cfg.ClickHouse.User,
			Password:     cfg.ClickHouse.Password,
			DialTimeout:  cfg.ClickHouse.DialTimeout,
			ReadTimeout:  cfg.ClickHouse.ReadTimeout,
			WriteTimeout: cfg.ClickHouse.WriteTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.InitSchema(ctx, internalrepo.HistorySchema(cfg.ClickHouse.Database)); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}

		return &historySinks{
			store:    internalrepo.NewClickHouseHistory(client.DB(), cfg.ClickHouse.Database),
			chClient: client,
		}, nil

	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}

// ProvideHub creates the websocket broadcast hub.
func ProvideHub(l *applogger.Logger) *stream.Hub {
	return stream.NewHub(l)
}

// ProvideAuditor creates the fetch event auditor.
func ProvideAuditor(sinks *historySinks, hub *stream.Hub, l *applogger.Logger) *usecase.Auditor {
	return usecase.NewAuditor(sinks.publisher, sinks.store, hub, l)
}

// ProvideAnalyzer creates the analysis pipeline.
func ProvideAnalyzer(cfg *config.Config, gate *ratelimit.Gate, fetcher *usecase.TrendFetcher, auditor *usecase.Auditor, m drepo.Metrics, l *applogger.Logger) *usecase.Analyzer {
	return usecase.NewAnalyzer(gate, fetcher, auditor, m, l, cfg.Chart.Width, cfg.Chart.Height)
}

// ProvideHandlers builds the full route surface: the browser page plus the
// JSON API.
func ProvideHandlers(cfg *config.Config, l *applogger.Logger, analyzer *usecase.Analyzer, auditor *usecase.Auditor, hub *stream.Hub) (xhttp.Handler, error) {
	page, err := web.NewPageHandler(l, analyzer, cfg.Chart.Path)
	if err != nil {
		return nil, fmt.Errorf("page handler: %w", err)
	}
	trendsAPI := api.NewTrendsHandler(l, analyzer, auditor, hub, cfg.Chart.Path)
	return xhttp.HandlerGroup{page, trendsAPI}, nil
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler, cacheSvc cache.Service, sinks *historySinks, hub *stream.Hub) *server.App {
	return server.New(cfg, l, handler, cacheSvc, sinks.publisher, sinks.chClient, hub)
}
