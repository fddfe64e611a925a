package handlers

import (
	"net/http"
	"strconv"

	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/sirupsen/logrus"
)

const defaultRefreshLimit = 100

type RefreshHandler struct {
	stats    *service.StatsService
	analysis *service.AnalysisService
	cfg      *config.Config
	log      *logrus.Logger
}

func NewRefreshHandler(stats *service.StatsService, analysis *service.AnalysisService, cfg *config.Config, log *logrus.Logger) *RefreshHandler {
	return &RefreshHandler{stats: stats, analysis: analysis, cfg: cfg, log: log}
}

// RefreshPlayer scrapes one player's bio and stats from the upstream site.
func (h *RefreshHandler) RefreshPlayer(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	player, err := h.stats.RefreshPlayerStats(r.Context(), name)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

// RefreshTop scrapes the top ranked board players and rebuilds the teammate
// table afterwards. Expect this to take a while; the scraper is rate limited.
func (h *RefreshHandler) RefreshTop(w http.ResponseWriter, r *http.Request) {
	season, err := seasonParam(r, h.cfg.Season)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	limit := defaultRefreshLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, h.log, &domain.ValidationError{Field: "limit", Value: raw, Reason: "must be an integer"})
			return
		}
	}

	refreshed, err := h.stats.RefreshTopPlayers(r.Context(), season, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	pairs, err := h.analysis.RebuildTeammates(r.Context(), season)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"refreshed":      refreshed,
		"teammate_pairs": pairs,
	})
}
