package main

import (
	"context"
	"flag"
	"os"

	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/llm"
	"github.com/dom/fantasy-draft-assistant/internal/repository/sqlite"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/sirupsen/logrus"
)

// analyze fills in LLM risk assessments for board players.
//
//	analyze -player "Saquon Barkley"   assess one player
//	analyze -top 50                    assess the top N players missing one
//	analyze -top 50 -force             regenerate even when cached
func main() {
	var (
		playerName = flag.String("player", "", "assess a single player by name")
		top        = flag.Int("top", 0, "assess the top N players on the board")
		force      = flag.Bool("force", false, "regenerate cached assessments")
		season     = flag.Int("season", 0, "season to operate on (default: configured season)")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if cfg.LLMAPIKey == "" {
		log.Fatal("LLM_API_KEY is not set")
	}
	if *season == 0 {
		*season = cfg.Season
	}

	db, err := sqlite.NewConnection(cfg.DatabasePath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	repos := sqlite.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:    repos,
		Config:   cfg,
		Logger:   log,
		Analyzer: llm.NewClient(cfg, log),
	})

	ctx := context.Background()

	switch {
	case *playerName != "":
		analysis, err := services.Analysis.EnsureAnalysis(ctx, *playerName, *season, *force)
		if err != nil {
			log.WithError(err).Fatal("analysis failed")
		}
		log.WithField("player", analysis.PlayerName).Info(analysis.Summary)

	case *top > 0:
		names, err := repos.DraftValue.TopNames(ctx, *season, *top)
		if err != nil {
			log.WithError(err).Fatal("loading board failed")
		}

		generated, failed := 0, 0
		for _, name := range names {
			analysis, err := services.Analysis.EnsureAnalysis(ctx, name, *season, *force)
			if err != nil {
				log.WithError(err).WithField("player", name).Warn("skipping player")
				failed++
				continue
			}
			log.WithField("player", name).Info(analysis.Summary)
			generated++
		}
		log.WithFields(logrus.Fields{
			"season":    *season,
			"generated": generated,
			"failed":    failed,
		}).Info("analysis run complete")

	default:
		flag.Usage()
		os.Exit(2)
	}
}
