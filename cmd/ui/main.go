package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"trendtruth/adapters/analyzeapi"
	"trendtruth/internal/config"
	"trendtruth/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Dashboard] Config load failed: %v", err)
	}

	backend := cfg.Server.BackendURL
	if backend == "" {
		backend = "http://localhost:8080"
	}
	// a bounded client keeps a hung backend from wedging the refresh trigger
	fetcher := analyzeapi.NewClient(backend, &http.Client{Timeout: 30 * time.Second})

	app, err := ui.NewApp(fetcher, ui.AppConfig{
		Limit:        cfg.Analyze.DefaultLimit,
		PollInterval: time.Minute,
	})
	if err != nil {
		log.Fatalf("[Dashboard] Init failed: %v", err)
	}

	go app.Controller().Run(context.Background(), time.Minute)

	if err := app.Start(cfg.Server.Port); err != nil {
		log.Fatalf("[Dashboard] Server failed: %v", err)
	}
}
