package handlers

import (
	"net/http"
	"strings"

	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/render"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/sirupsen/logrus"
)

type PlayerHandler struct {
	board    *service.BoardService
	stats    *service.StatsService
	analysis *service.AnalysisService
	renderer *render.CardRenderer
	cfg      *config.Config
	log      *logrus.Logger
}

func NewPlayerHandler(services *service.Services, renderer *render.CardRenderer, cfg *config.Config, log *logrus.Logger) *PlayerHandler {
	return &PlayerHandler{
		board:    services.Board,
		stats:    services.Stats,
		analysis: services.Analysis,
		renderer: renderer,
		cfg:      cfg,
		log:      log,
	}
}

type playersResponse struct {
	Players []domain.PlayerView `json:"players"`
	Season  int                 `json:"season"`
}

// List serves the board. With grouped=1 the response is the four-column
// layout instead of a flat list.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseBoardQuery(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if boolParam(r, "grouped") {
		board, err := h.board.GetBoard(r.Context(), query)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, board)
		return
	}

	views, err := h.board.ListPlayers(r.Context(), query)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, playersResponse{Players: views, Season: query.Season})
}

// Get serves the full detail payload for one board player. The default stat
// window is the three seasons before the draft year.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	season, err := seasonParam(r, h.cfg.Season)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	seasons := []int{season - 3, season - 2, season - 1}
	if boolParam(r, "all_seasons") {
		seasons = nil
	}

	detail, err := h.stats.GetPlayerDetail(r.Context(), name, season, seasons)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *PlayerHandler) GetTeammates(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	season, err := seasonParam(r, h.cfg.Season)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	teammates, err := h.analysis.GetTeammates(r.Context(), name, season)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if teammates == nil {
		teammates = []*domain.PlayerTeammate{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"teammates": teammates})
}

// GetCard renders the HTML draft card, including the cached assessment when
// one exists.
func (h *PlayerHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	season, err := seasonParam(r, h.cfg.Season)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	view, err := h.board.GetPlayerView(r.Context(), name, season)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var analysis *domain.PlayerAnalysis
	if view.HasAnalysis {
		analysis, err = h.analysis.GetAnalysis(r.Context(), view.PlayerName, season)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
	}

	html, err := h.renderer.PlayerCard(*view, analysis)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (h *PlayerHandler) parseBoardQuery(r *http.Request) (service.BoardQuery, error) {
	var query service.BoardQuery

	season, err := seasonParam(r, h.cfg.Season)
	if err != nil {
		return query, err
	}
	query.Season = season

	query.Status, err = domain.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		return query, err
	}
	query.Order, err = domain.ParseBoardOrder(r.URL.Query().Get("order"))
	if err != nil {
		return query, err
	}

	if raw := r.URL.Query().Get("position"); raw != "" {
		for _, token := range strings.Split(raw, ",") {
			pos, err := domain.ParsePosition(token)
			if err != nil {
				return query, err
			}
			query.Positions = append(query.Positions, pos)
		}
	}

	query.Search = r.URL.Query().Get("search")
	query.IncludeAll = boolParam(r, "include_all")
	return query, nil
}

func boolParam(r *http.Request, name string) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
