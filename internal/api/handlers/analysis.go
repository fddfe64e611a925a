package handlers

import (
	"net/http"

	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/sirupsen/logrus"
)

type AnalysisHandler struct {
	analysis *service.AnalysisService
	cfg      *config.Config
	log      *logrus.Logger
}

func NewAnalysisHandler(analysis *service.AnalysisService, cfg *config.Config, log *logrus.Logger) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis, cfg: cfg, log: log}
}

// Generate returns the cached assessment, generating one on a cache miss.
// force=1 regenerates unconditionally.
func (h *AnalysisHandler) Generate(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	season, err := seasonParam(r, h.cfg.Season)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	force := boolParam(r, "force")

	analysis, err := h.analysis.EnsureAnalysis(r.Context(), name, season, force)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

