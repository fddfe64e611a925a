package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/fantasy-draft-assistant/internal/api"
	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/llm"
	"github.com/dom/fantasy-draft-assistant/internal/repository/sqlite"
	"github.com/dom/fantasy-draft-assistant/internal/scraper"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	configureLogger(log, cfg)

	db, err := sqlite.NewConnection(cfg.DatabasePath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	repos := sqlite.NewRepositories(db)

	deps := service.Deps{
		Repos:  repos,
		Config: cfg,
		Logger: log,
		Source: scraper.NewPFRClient(cfg, log),
	}
	if cfg.LLMAPIKey != "" {
		deps.Analyzer = llm.NewClient(cfg, log)
	} else {
		log.Warn("no LLM API key configured; analysis generation disabled")
	}

	services := service.NewServices(deps)
	router := api.NewRouter(services, cfg, log)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":   cfg.Port,
			"season": cfg.Season,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}

func configureLogger(log *logrus.Logger, cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
