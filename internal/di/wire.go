//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/ashishpawar00/KeywordResearchTool/pkg/config"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Core pipeline
		ProvideGate,
		ProvideTrendSource,
		ProvideCache,
		ProvideFetcher,

		// Audit sinks
		ProvideHistorySinks,
		ProvideHub,
		ProvideAuditor,

		// Pipeline and HTTP surface
		ProvideAnalyzer,
		ProvideHandlers,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
