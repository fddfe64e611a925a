package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/repository"
	"github.com/sirupsen/logrus"
)

// StatsService fetches player statistics from the upstream site and serves
// the stored detail views.
type StatsService struct {
	repos  *repository.Repositories
	board  *BoardService
	source StatsSource
	log    *logrus.Logger
}

func NewStatsService(repos *repository.Repositories, board *BoardService, source StatsSource, log *logrus.Logger) *StatsService {
	return &StatsService{repos: repos, board: board, source: source, log: log}
}

// GetPlayerDetail returns the board row joined with the scraped bio, stat
// history, teammates and cached assessment. The player must be on the board;
// missing scrape data, teammates or assessment degrade to empty. Pass seasons
// to restrict the stat history; nil returns everything.
func (s *StatsService) GetPlayerDetail(ctx context.Context, playerName string, season int, seasons []int) (*domain.PlayerDetail, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, &domain.ValidationError{Field: "player_name", Value: playerName, Reason: "must not be empty"}
	}

	view, err := s.board.GetPlayerView(ctx, playerName, season)
	if err != nil {
		return nil, err
	}

	detail := &domain.PlayerDetail{
		PlayerView: *view,
		Passing:    []domain.PassingStats{},
		Rushing:    []domain.RushingStats{},
		Receiving:  []domain.ReceivingStats{},
		Teammates:  []*domain.PlayerTeammate{},
	}

	candidates, err := s.repos.Player.SearchByName(ctx, view.PlayerName)
	if err != nil {
		return nil, err
	}
	if player := pickByName(candidates, view.PlayerName); player != nil {
		stats, err := s.repos.Stats.GetForPlayer(ctx, player.ID, seasons)
		if err != nil {
			return nil, err
		}
		detail.Player = player
		detail.Passing = stats.Passing
		detail.Rushing = stats.Rushing
		detail.Receiving = stats.Receiving
	}

	teammates, err := s.repos.Teammate.GetForPlayer(ctx, view.PlayerName, season)
	if err != nil {
		return nil, err
	}
	if teammates != nil {
		detail.Teammates = teammates
	}

	analysis, err := s.repos.Analysis.Get(ctx, view.PlayerName, season)
	if err != nil && !errors.Is(err, domain.ErrAnalysisNotFound) {
		return nil, err
	}
	detail.Analysis = analysis

	return detail, nil
}

// RefreshPlayerStats scrapes the upstream site for one player and replaces
// their stored bio and stat rows.
func (s *StatsService) RefreshPlayerStats(ctx context.Context, playerName string) (*domain.Player, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, &domain.ValidationError{Field: "player_name", Value: playerName, Reason: "must not be empty"}
	}
	if s.source == nil {
		return nil, &domain.UpstreamError{Source: "scraper", Err: errors.New("no stats source configured")}
	}

	ids, err := s.source.Search(ctx, playerName)
	if err != nil {
		return nil, wrapUpstream("scraper", err)
	}
	if len(ids) == 0 {
		return nil, domain.ErrPlayerNotFound
	}

	player, err := s.pickCandidate(ctx, ids, playerName)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Player.Upsert(ctx, player); err != nil {
		return nil, err
	}

	passing, rushing, receiving, err := s.source.PlayerStats(ctx, player.PFRID)
	if err != nil {
		return nil, wrapUpstream("scraper", err)
	}
	passing, rushing, receiving, err = s.resolveTeams(ctx, player.ID, passing, rushing, receiving)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Stats.ReplaceForPlayer(ctx, player.ID, passing, rushing, receiving); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"player": player.Name,
		"pfr_id": player.PFRID,
	}).Info("player stats refreshed")

	return player, nil
}

// RefreshTopPlayers scrapes the top ranked players on the board for a season.
// Scrape failures are logged and skipped; the count of refreshed players is
// returned.
func (s *StatsService) RefreshTopPlayers(ctx context.Context, season, limit int) (int, error) {
	if limit <= 0 {
		return 0, &domain.ValidationError{Field: "limit", Value: limit, Reason: "must be positive"}
	}
	names, err := s.repos.DraftValue.TopNames(ctx, season, limit)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, name := range names {
		if ctx.Err() != nil {
			return refreshed, ctx.Err()
		}
		if _, err := s.RefreshPlayerStats(ctx, name); err != nil {
			s.log.WithError(err).WithField("player", name).Warn("skipping player refresh")
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// pickCandidate fetches each search hit until one matches the requested name,
// preferring skill positions. Search results are ordered by relevance so the
// first hit wins ties.
func (s *StatsService) pickCandidate(ctx context.Context, ids []string, playerName string) (*domain.Player, error) {
	var fallback *domain.Player
	want := strings.ToLower(playerName)

	for _, id := range ids {
		player, err := s.source.PlayerInfo(ctx, id)
		if err != nil {
			s.log.WithError(err).WithField("pfr_id", id).Debug("candidate fetch failed")
			continue
		}
		if strings.ToLower(player.Name) == want && !player.Position.HiddenByDefault() {
			return player, nil
		}
		if fallback == nil {
			fallback = player
		}
	}
	if fallback == nil {
		return nil, &domain.UpstreamError{Source: "scraper", Err: errors.New("no usable search candidate")}
	}
	return fallback, nil
}

// resolveTeams maps the scraped team abbreviations onto team rows, creating
// them on first sight, and returns fresh stat rows stamped with the player
// and team IDs. The source's rows are left untouched; a source may hand out
// the same backing slices on every call.
func (s *StatsService) resolveTeams(ctx context.Context, playerID uint, passing []domain.PassingStats, rushing []domain.RushingStats, receiving []domain.ReceivingStats) ([]domain.PassingStats, []domain.RushingStats, []domain.ReceivingStats, error) {
	resolve := func(team *domain.Team) (uint, error) {
		if team == nil || team.Abbreviation == "" {
			return 0, &domain.ValidationError{Field: "team", Value: "", Reason: "stat row missing team"}
		}
		stored, err := s.repos.Team.GetOrCreate(ctx, team.Abbreviation)
		if err != nil {
			return 0, err
		}
		return stored.ID, nil
	}

	resolvedPassing := make([]domain.PassingStats, 0, len(passing))
	for _, row := range passing {
		id, err := resolve(row.Team)
		if err != nil {
			return nil, nil, nil, err
		}
		row.PlayerID = playerID
		row.TeamID = id
		row.Team = nil
		resolvedPassing = append(resolvedPassing, row)
	}

	resolvedRushing := make([]domain.RushingStats, 0, len(rushing))
	for _, row := range rushing {
		id, err := resolve(row.Team)
		if err != nil {
			return nil, nil, nil, err
		}
		row.PlayerID = playerID
		row.TeamID = id
		row.Team = nil
		resolvedRushing = append(resolvedRushing, row)
	}

	resolvedReceiving := make([]domain.ReceivingStats, 0, len(receiving))
	for _, row := range receiving {
		id, err := resolve(row.Team)
		if err != nil {
			return nil, nil, nil, err
		}
		row.PlayerID = playerID
		row.TeamID = id
		row.Team = nil
		resolvedReceiving = append(resolvedReceiving, row)
	}

	return resolvedPassing, resolvedRushing, resolvedReceiving, nil
}

func pickByName(candidates []*domain.Player, name string) *domain.Player {
	want := strings.ToLower(name)
	for _, c := range candidates {
		if strings.ToLower(c.Name) == want {
			return c
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return nil
}

func wrapUpstream(source string, err error) error {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return err
	}
	return &domain.UpstreamError{Source: source, Err: err}
}
