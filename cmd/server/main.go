package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lunchradar/backend/config"
	httpDelivery "github.com/lunchradar/backend/internal/delivery/http"
	"github.com/lunchradar/backend/internal/infrastructure/fetch"
	"github.com/lunchradar/backend/internal/infrastructure/gemini"
	"github.com/lunchradar/backend/internal/infrastructure/notify"
	"github.com/lunchradar/backend/internal/infrastructure/storage"
	"github.com/lunchradar/backend/internal/usecase"
)

func main() {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.Environment == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	log.Infof("Starting LunchRadar Backend")
	log.Infof("Environment: %s", cfg.Server.Environment)
	log.Infof("Model: %s", cfg.Model.Name)

	db, err := storage.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open store at %s: %v", cfg.Store.Path, err)
	}
	defer db.Close()
	log.Infof("Store ready at %s", cfg.Store.Path)

	fetcher := fetch.NewClient(fetch.Config{
		Timeout:   cfg.Fetch.Timeout,
		UserAgent: cfg.Fetch.UserAgent,
		Retries:   cfg.Fetch.Retries,
	})

	model := gemini.NewClient(cfg.Model.APIKey, cfg.Model.Name, cfg.Model.BaseURL, cfg.Model.RequestsPerMinute)

	summarizer := usecase.NewSummarizer(db, fetcher, model, usecase.SummarizerConfig{Log: log})

	if cfg.Sweep.Enabled {
		sink := notify.NewWebhook(cfg.Notify.Timeout)
		sweeper := usecase.NewSweeper(db, db, summarizer, sink, usecase.SweeperConfig{
			Interval: cfg.Sweep.Interval,
			Log:      log,
		})
		go sweeper.Run(context.Background())
	} else {
		log.Info("Change sweep disabled")
	}

	handler := httpDelivery.NewHandler(summarizer, db)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
