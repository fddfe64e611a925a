package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/repository"
	"github.com/dom/fantasy-draft-assistant/internal/repository/sqlite"
	"github.com/dom/fantasy-draft-assistant/internal/scraper"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/sirupsen/logrus"
)

// collect loads the draft board and scrapes player statistics.
//
//	collect -values board.csv          import auction values for the season
//	collect -player "Saquon Barkley"   scrape one player
//	collect -top 100                   scrape the top N board players
func main() {
	var (
		valuesPath = flag.String("values", "", "CSV of draft values to import (name,position,team,rank_overall,rank_position,value)")
		playerName = flag.String("player", "", "scrape a single player by name")
		top        = flag.Int("top", 0, "scrape the top N players on the board")
		season     = flag.Int("season", 0, "season to operate on (default: configured season)")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
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
		Repos:  repos,
		Config: cfg,
		Logger: log,
		Source: scraper.NewPFRClient(cfg, log),
	})

	ctx := context.Background()

	switch {
	case *valuesPath != "":
		n, err := importValues(ctx, repos.DraftValue, *valuesPath, *season)
		if err != nil {
			log.WithError(err).Fatal("value import failed")
		}
		log.WithFields(logrus.Fields{"season": *season, "rows": n}).Info("draft values imported")

		pairs, err := services.Analysis.RebuildTeammates(ctx, *season)
		if err != nil {
			log.WithError(err).Fatal("teammate rebuild failed")
		}
		log.WithField("pairs", pairs).Info("teammate table rebuilt")

	case *playerName != "":
		player, err := services.Stats.RefreshPlayerStats(ctx, *playerName)
		if err != nil {
			log.WithError(err).Fatal("player refresh failed")
		}
		log.WithFields(logrus.Fields{"player": player.Name, "pfr_id": player.PFRID}).Info("player refreshed")

	case *top > 0:
		refreshed, err := services.Stats.RefreshTopPlayers(ctx, *season, *top)
		if err != nil {
			log.WithError(err).Fatal("board refresh failed")
		}
		log.WithFields(logrus.Fields{"season": *season, "refreshed": refreshed}).Info("board refreshed")

	default:
		flag.Usage()
		os.Exit(2)
	}
}

// importValues reads a board CSV and upserts one DraftValue per row. A header
// row is detected by a non-numeric rank column and skipped.
func importValues(ctx context.Context, repo repository.DraftValueRepository, path string, season int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 6

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	var values []*domain.DraftValue
	for i, rec := range records {
		rankOverall, err := strconv.Atoi(rec[3])
		if err != nil {
			if i == 0 {
				continue // header
			}
			return 0, fmt.Errorf("row %d: bad rank_overall %q", i+1, rec[3])
		}
		position, err := domain.ParsePosition(rec[1])
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		rankPosition, err := strconv.Atoi(rec[4])
		if err != nil {
			return 0, fmt.Errorf("row %d: bad rank_position %q", i+1, rec[4])
		}
		value, err := strconv.Atoi(rec[5])
		if err != nil {
			return 0, fmt.Errorf("row %d: bad value %q", i+1, rec[5])
		}

		values = append(values, &domain.DraftValue{
			PlayerName:   rec[0],
			Season:       season,
			Position:     position,
			Team:         rec[2],
			RankOverall:  rankOverall,
			RankPosition: rankPosition,
			Value:        value,
		})
	}

	if err := repo.UpsertMany(ctx, values); err != nil {
		return 0, err
	}
	return len(values), nil
}
