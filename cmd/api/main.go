package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"trendtruth/adapters/newsrss"
	"trendtruth/adapters/postgres"
	"trendtruth/adapters/rediscache"
	"trendtruth/adapters/social"
	"trendtruth/app"
	"trendtruth/internal/config"
	"trendtruth/ports"
	"trendtruth/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[API] Config load failed: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	sources := []ports.TrendSource{
		social.NewRedditSource(cfg.Social.UserAgent, cfg.Social.Timeout),
		social.NewHackerNewsSource(cfg.Social.Timeout),
		social.NewXSource(cfg.Social.XBearerToken, cfg.Social.UserAgent, cfg.Social.Timeout),
	}
	verifier := newsrss.NewVerifier(cfg.Analyze.MaxEvidence, cfg.Social.Timeout)
	cache := rediscache.New(cfg.Cache.RedisURL)

	// run history is optional: without DATABASE_URL the API still serves
	var runs ports.RunRepository
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Printf("[API] Database unavailable, run history disabled: %v", err)
		} else {
			runs, err = postgres.NewRunRepository(db)
			if err != nil {
				log.Printf("[API] Run repository init failed, run history disabled: %v", err)
				runs = nil
			}
		}
	}

	service := app.NewAnalyzeService(sources, verifier, cache, runs, app.AnalyzeServiceOptions{
		CacheTTL:     cfg.Cache.TTL,
		DefaultLimit: cfg.Analyze.DefaultLimit,
		MinLimit:     cfg.Analyze.MinLimit,
		MaxLimit:     cfg.Analyze.MaxLimit,
	})

	server, err := ui.NewServer(service, runs)
	if err != nil {
		log.Fatalf("[API] Server init failed: %v", err)
	}
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("[API] Server failed: %v", err)
	}
}
