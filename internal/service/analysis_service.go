package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// AnalysisRequest is the context handed to the Analyzer for one player.
type AnalysisRequest struct {
	PlayerName   string
	Season       int
	Position     domain.Position
	Team         string
	RankOverall  int
	RankPosition int
	Value        int
	Teammates    []domain.PlayerTeammate
}

// AnalysisResult is what the Analyzer returns before persistence.
type AnalysisResult struct {
	PlayingTimeScore int      `json:"playing_time_score"`
	InjuryRiskScore  int      `json:"injury_risk_score"`
	BreakoutScore    int      `json:"breakout_score"`
	BustScore        int      `json:"bust_score"`
	KeyChanges       string   `json:"key_changes"`
	Outlook          string   `json:"outlook"`
	Summary          string   `json:"summary"`
	Citations        []string `json:"citations"`
}

// AnalysisService caches one risk assessment per (player, season) and
// regenerates on demand.
type AnalysisService struct {
	repos    *repository.Repositories
	analyzer Analyzer
	log      *logrus.Logger
}

func NewAnalysisService(repos *repository.Repositories, analyzer Analyzer, log *logrus.Logger) *AnalysisService {
	return &AnalysisService{repos: repos, analyzer: analyzer, log: log}
}

func (s *AnalysisService) GetAnalysis(ctx context.Context, playerName string, season int) (*domain.PlayerAnalysis, error) {
	return s.repos.Analysis.Get(ctx, playerName, season)
}

// EnsureAnalysis returns the cached assessment, generating one when the cache
// misses or force is set. The player must have a draft value row.
func (s *AnalysisService) EnsureAnalysis(ctx context.Context, playerName string, season int, force bool) (*domain.PlayerAnalysis, error) {
	if !force {
		analysis, err := s.repos.Analysis.Get(ctx, playerName, season)
		if err == nil {
			return analysis, nil
		}
		if !errors.Is(err, domain.ErrAnalysisNotFound) {
			return nil, err
		}
	}

	if s.analyzer == nil {
		return nil, &domain.UpstreamError{Source: "llm", Err: errors.New("no analyzer configured")}
	}

	value, err := s.repos.DraftValue.GetByName(ctx, playerName, season)
	if err != nil {
		return nil, err
	}
	teammates, err := s.repos.Teammate.GetForPlayer(ctx, value.PlayerName, season)
	if err != nil {
		return nil, err
	}

	req := AnalysisRequest{
		PlayerName:   value.PlayerName,
		Season:       season,
		Position:     value.Position,
		Team:         value.Team,
		RankOverall:  value.RankOverall,
		RankPosition: value.RankPosition,
		Value:        value.Value,
	}
	for _, tm := range teammates {
		req.Teammates = append(req.Teammates, *tm)
	}

	result, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, wrapUpstream("llm", err)
	}

	citations, err := json.Marshal(result.Citations)
	if err != nil {
		return nil, fmt.Errorf("encoding citations: %w", err)
	}

	analysis := &domain.PlayerAnalysis{
		PlayerName:       value.PlayerName,
		Season:           season,
		PlayingTimeScore: result.PlayingTimeScore,
		InjuryRiskScore:  result.InjuryRiskScore,
		BreakoutScore:    result.BreakoutScore,
		BustScore:        result.BustScore,
		KeyChanges:       result.KeyChanges,
		Outlook:          result.Outlook,
		Summary:          result.Summary,
		Citations:        datatypes.JSON(citations),
		GeneratedAt:      time.Now().UTC(),
	}
	if err := analysis.Validate(); err != nil {
		return nil, &domain.UpstreamError{Source: "llm", Err: err}
	}
	if err := s.repos.Analysis.Upsert(ctx, analysis); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"player": value.PlayerName,
		"season": season,
		"forced": force,
	}).Info("analysis generated")

	return analysis, nil
}

func (s *AnalysisService) GetTeammates(ctx context.Context, playerName string, season int) ([]*domain.PlayerTeammate, error) {
	if strings.TrimSpace(playerName) == "" {
		return nil, &domain.ValidationError{Field: "player_name", Value: playerName, Reason: "must not be empty"}
	}
	return s.repos.Teammate.GetForPlayer(ctx, playerName, season)
}

// RebuildTeammates derives the teammate table for a season from the draft
// values: every pair of players sharing a team abbreviation.
func (s *AnalysisService) RebuildTeammates(ctx context.Context, season int) (int, error) {
	values, err := s.repos.DraftValue.List(ctx, season, nil)
	if err != nil {
		return 0, err
	}

	byTeam := make(map[string][]*domain.DraftValue)
	for _, dv := range values {
		if dv.Team == "" {
			continue
		}
		byTeam[dv.Team] = append(byTeam[dv.Team], dv)
	}

	var rows []*domain.PlayerTeammate
	for _, roster := range byTeam {
		for _, player := range roster {
			for _, teammate := range roster {
				if teammate.PlayerName == player.PlayerName {
					continue
				}
				rows = append(rows, &domain.PlayerTeammate{
					PlayerName:       player.PlayerName,
					TeammateName:     teammate.PlayerName,
					Season:           season,
					TeammatePosition: teammate.Position,
				})
			}
		}
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := s.repos.Teammate.UpsertMany(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
