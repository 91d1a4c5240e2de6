package main

import (
	"flag"
	"log"
	"os"

	"github.com/ashishpawar00/KeywordResearchTool/internal/di"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s cache=%s history=%s", cfg.Environment, cfg.Cache.Backend, cfg.History.Backend)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Blocks until signal.
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
