package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// nameParam reads the player name path segment. Names contain spaces, so the
// raw segment arrives percent-encoded.
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// seasonParam reads the season query parameter, falling back to the
// configured draft season.
func seasonParam(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("season")
	if raw == "" {
		return fallback, nil
	}
	season, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.ValidationError{Field: "season", Value: raw, Reason: "must be an integer"}
	}
	return season, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps domain errors onto HTTP statuses: validation 400, missing
// records 404, upstream failures 502, anything else 500.
func writeError(w http.ResponseWriter, log *logrus.Logger, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: validationErr.Error(),
			Field: validationErr.Field,
		})
		return
	}

	if errors.Is(err, domain.ErrPlayerNotFound) || errors.Is(err, domain.ErrAnalysisNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		log.WithError(err).WithField("source", upstream.Source).Warn("upstream failure")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	log.WithError(err).Error("request failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
