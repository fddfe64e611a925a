package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/sirupsen/logrus"
)

type StatusHandler struct {
	status *service.StatusService
	cfg    *config.Config
	log    *logrus.Logger
}

func NewStatusHandler(status *service.StatusService, cfg *config.Config, log *logrus.Logger) *StatusHandler {
	return &StatusHandler{status: status, cfg: cfg, log: log}
}

func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	season, err := seasonParam(r, h.cfg.Season)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	status, err := h.status.GetStatus(r.Context(), name, season)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Update merges a partial status update. The JSON body uses pointer
// semantics: absent fields are left untouched.
func (h *StatusHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	season, err := seasonParam(r, h.cfg.Season)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var update domain.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, h.log, &domain.ValidationError{Field: "body", Value: "", Reason: "invalid JSON"})
		return
	}

	status, err := h.status.SetStatus(r.Context(), name, season, update)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

