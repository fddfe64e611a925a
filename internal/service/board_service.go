package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/repository"
	"github.com/sirupsen/logrus"
)

// BoardQuery describes one draft-board lookup. All filters are conjunctive.
type BoardQuery struct {
	Season    int
	Status    domain.StatusFilter
	Positions []domain.Position
	Search    string
	Order     domain.BoardOrder
	// IncludeAll lifts the default exclusion of kickers and defenses.
	IncludeAll bool
}

// GroupedBoard is the four-column draft-day layout. Kickers and defenses
// share a fifth pair of columns that only appears on explicit request.
type GroupedBoard struct {
	QB  []domain.PlayerView `json:"qb"`
	RB  []domain.PlayerView `json:"rb"`
	WR  []domain.PlayerView `json:"wr"`
	TE  []domain.PlayerView `json:"te"`
	K   []domain.PlayerView `json:"k,omitempty"`
	DST []domain.PlayerView `json:"dst,omitempty"`
}

// BoardService assembles player views from draft values, the status ledger
// and analysis presence, applying auction inflation at read time.
type BoardService struct {
	repos *repository.Repositories
	cfg   *config.Config
	log   *logrus.Logger
}

func NewBoardService(repos *repository.Repositories, cfg *config.Config, log *logrus.Logger) *BoardService {
	return &BoardService{repos: repos, cfg: cfg, log: log}
}

// AdjustValue applies the league inflation factor to a base auction value,
// rounding half away from zero.
func (s *BoardService) AdjustValue(base int) int {
	return int(math.Round(float64(base) * s.cfg.InflationFactor))
}

func (s *BoardService) ListPlayers(ctx context.Context, q BoardQuery) ([]domain.PlayerView, error) {
	if q.Season <= 0 {
		return nil, &domain.ValidationError{Field: "season", Value: q.Season, Reason: "must be positive"}
	}

	values, err := s.repos.DraftValue.List(ctx, q.Season, q.Positions)
	if err != nil {
		return nil, err
	}

	statuses, err := s.repos.Status.ListForSeason(ctx, q.Season)
	if err != nil {
		return nil, err
	}
	statusByName := make(map[string]domain.DraftStatus, len(statuses))
	for _, st := range statuses {
		statusByName[strings.ToLower(st.PlayerName)] = *st
	}

	analyzed, err := nameSet(s.repos.Analysis.NamesWithAnalysis(ctx, q.Season))
	if err != nil {
		return nil, err
	}
	withTeammates, err := nameSet(s.repos.Teammate.NamesWithTeammates(ctx, q.Season))
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))

	views := make([]domain.PlayerView, 0, len(values))
	for _, dv := range values {
		if dv.Position.HiddenByDefault() && !q.IncludeAll && !containsPosition(q.Positions, dv.Position) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(dv.PlayerName), search) {
			continue
		}

		key := strings.ToLower(dv.PlayerName)
		status, ok := statusByName[key]
		if !ok {
			status = *domain.NewDraftStatus(dv.PlayerName, q.Season)
		}
		if !matchesStatusFilter(q.Status, status) {
			continue
		}

		views = append(views, domain.PlayerView{
			PlayerName:    dv.PlayerName,
			Season:        dv.Season,
			Position:      dv.Position,
			Team:          dv.Team,
			RankOverall:   dv.RankOverall,
			RankPosition:  dv.RankPosition,
			BaseValue:     dv.Value,
			AdjustedValue: s.AdjustValue(dv.Value),
			Status:        status,
			HasAnalysis:   analyzed[key],
			HasTeammates:  withTeammates[key],
		})
	}

	if q.Order == domain.OrderByPosition {
		sort.SliceStable(views, func(i, j int) bool {
			if views[i].Position != views[j].Position {
				return views[i].Position.SortRank() < views[j].Position.SortRank()
			}
			return views[i].RankPosition < views[j].RankPosition
		})
	}

	return views, nil
}

// GetBoard returns the board grouped into position columns. Kickers and
// defenses appear only when the query asks for them, either via IncludeAll
// or an explicit position filter.
func (s *BoardService) GetBoard(ctx context.Context, q BoardQuery) (*GroupedBoard, error) {
	q.Order = domain.OrderByPosition
	views, err := s.ListPlayers(ctx, q)
	if err != nil {
		return nil, err
	}

	board := &GroupedBoard{
		QB: []domain.PlayerView{},
		RB: []domain.PlayerView{},
		WR: []domain.PlayerView{},
		TE: []domain.PlayerView{},
	}
	for _, v := range views {
		switch v.Position {
		case domain.PositionQB:
			board.QB = append(board.QB, v)
		case domain.PositionRB:
			board.RB = append(board.RB, v)
		case domain.PositionWR:
			board.WR = append(board.WR, v)
		case domain.PositionTE:
			board.TE = append(board.TE, v)
		case domain.PositionK:
			board.K = append(board.K, v)
		case domain.PositionDST:
			board.DST = append(board.DST, v)
		}
	}
	return board, nil
}

// GetPlayerView assembles the single-row view the card endpoint renders.
func (s *BoardService) GetPlayerView(ctx context.Context, playerName string, season int) (*domain.PlayerView, error) {
	value, err := s.repos.DraftValue.GetByName(ctx, playerName, season)
	if err != nil {
		return nil, err
	}
	status, err := s.repos.Status.Get(ctx, value.PlayerName, season)
	if err != nil {
		return nil, err
	}
	teammates, err := s.repos.Teammate.GetForPlayer(ctx, value.PlayerName, season)
	if err != nil {
		return nil, err
	}

	hasAnalysis := true
	if _, err := s.repos.Analysis.Get(ctx, value.PlayerName, season); err != nil {
		if !errors.Is(err, domain.ErrAnalysisNotFound) {
			return nil, err
		}
		hasAnalysis = false
	}

	return &domain.PlayerView{
		PlayerName:    value.PlayerName,
		Season:        value.Season,
		Position:      value.Position,
		Team:          value.Team,
		RankOverall:   value.RankOverall,
		RankPosition:  value.RankPosition,
		BaseValue:     value.Value,
		AdjustedValue: s.AdjustValue(value.Value),
		Status:        *status,
		HasAnalysis:   hasAnalysis,
		HasTeammates:  len(teammates) > 0,
	}, nil
}

func matchesStatusFilter(f domain.StatusFilter, st domain.DraftStatus) bool {
	switch f {
	case domain.StatusFilterAvailable:
		return !st.Drafted
	case domain.StatusFilterTarget:
		return st.Target
	case domain.StatusFilterAvoid:
		return st.Avoid
	case domain.StatusFilterDrafted:
		return st.Drafted
	default:
		return true
	}
}

func containsPosition(positions []domain.Position, p domain.Position) bool {
	for _, pos := range positions {
		if pos == p {
			return true
		}
	}
	return false
}

func nameSet(names []string, err error) (map[string]bool, error) {
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set, nil
}
