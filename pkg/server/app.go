package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ashishpawar00/KeywordResearchTool/internal/service/stream"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/cache"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/clickhouse"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/config"
	xhttp "github.com/ashishpawar00/KeywordResearchTool/pkg/http"
	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"

	drepo "github.com/ashishpawar00/KeywordResearchTool/internal/domain/repository"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server

	// Closed on shutdown; any of these may be nil depending on config.
	cacheSvc  cache.Service
	publisher drepo.EventPublisher
	chClient  *clickhouse.Client
	hub       *stream.Hub
}

// New creates the App. Handlers are already wired; infrastructure clients
// are passed in so the App can close them on shutdown.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	cacheSvc cache.Service,
	publisher drepo.EventPublisher,
	chClient *clickhouse.Client,
	hub *stream.Hub,
) *App {
	return &App{
		cfg:       cfg,
		logger:    l,
		handler:   handler,
		cacheSvc:  cacheSvc,
		publisher: publisher,
		chClient:  chClient,
		hub:       hub,
	}
}

// Run starts the HTTP server and blocks until an interrupt arrives.
func (a *App) Run() error {
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(a.logger),
	)

	if err := a.httpServer.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.hub != nil {
		a.hub.Close()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
