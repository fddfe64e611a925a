package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
)

// CardRenderer turns board rows and cached assessments into standalone HTML
// fragments. It holds parsed templates only; rendering is a pure function of
// the input.
type CardRenderer struct {
	player   *template.Template
	analysis *template.Template
}

func NewCardRenderer() *CardRenderer {
	return &CardRenderer{
		player:   template.Must(template.New("player-card").Parse(playerCardTemplate)),
		analysis: template.Must(template.New("analysis-card").Parse(analysisCardTemplate)),
	}
}

type playerCardData struct {
	View     domain.PlayerView
	Analysis *analysisCardData
	Badge    string
}

type analysisCardData struct {
	Record    domain.PlayerAnalysis
	Citations []string
}

// PlayerCard renders the draft card for one board row. Pass the cached
// analysis when present; nil renders the card without the assessment block.
func (r *CardRenderer) PlayerCard(view domain.PlayerView, analysis *domain.PlayerAnalysis) (string, error) {
	data := playerCardData{View: view, Badge: statusBadge(view.Status)}
	if analysis != nil {
		data.Analysis = &analysisCardData{
			Record:    *analysis,
			Citations: decodeCitations(analysis),
		}
	}

	var b strings.Builder
	if err := r.player.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering player card: %w", err)
	}
	return b.String(), nil
}

// AnalysisCard renders just the assessment block.
func (r *CardRenderer) AnalysisCard(analysis *domain.PlayerAnalysis) (string, error) {
	data := analysisCardData{Record: *analysis, Citations: decodeCitations(analysis)}

	var b strings.Builder
	if err := r.analysis.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering analysis card: %w", err)
	}
	return b.String(), nil
}

func statusBadge(status domain.DraftStatus) string {
	switch {
	case status.Drafted:
		return "drafted"
	case status.Target:
		return "target"
	case status.Avoid:
		return "avoid"
	default:
		return "available"
	}
}

func decodeCitations(analysis *domain.PlayerAnalysis) []string {
	if len(analysis.Citations) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(analysis.Citations, &urls); err != nil {
		return nil
	}
	return urls
}

const playerCardTemplate = `<div class="player-card player-card--{{.Badge}}">
  <div class="player-card__header">
    <h2>{{.View.PlayerName}}</h2>
    <span class="player-card__pos">{{.View.Position}}</span>
    <span class="player-card__team">{{.View.Team}}</span>
    <span class="player-card__badge">{{.Badge}}</span>
  </div>
  <div class="player-card__market">
    <span>Overall #{{.View.RankOverall}}</span>
    <span>{{.View.Position}} #{{.View.RankPosition}}</span>
    <span class="player-card__value">${{.View.AdjustedValue}} <small>(base ${{.View.BaseValue}})</small></span>
  </div>
  {{- if .View.Status.Drafted}}
  <div class="player-card__drafted">
    Drafted{{if .View.Status.DraftedBy}} by {{.View.Status.DraftedBy}}{{end}}{{if .View.Status.DraftedPrice}} for ${{.View.Status.DraftedPrice}}{{end}}
  </div>
  {{- end}}
  {{- if .View.Status.Notes}}
  <div class="player-card__notes">{{.View.Status.Notes}}</div>
  {{- end}}
  {{- if .Analysis}}
  {{template "assessment" .Analysis}}
  {{- end}}
</div>
{{define "assessment"}}<div class="analysis-card">
  <ul class="analysis-card__scores">
    <li>Playing time: {{.Record.PlayingTimeScore}}</li>
    <li>Injury risk: {{.Record.InjuryRiskScore}}/5</li>
    <li>Breakout: {{.Record.BreakoutScore}}/5</li>
    <li>Bust: {{.Record.BustScore}}/5</li>
  </ul>
  <p class="analysis-card__changes">{{.Record.KeyChanges}}</p>
  <p class="analysis-card__outlook">{{.Record.Outlook}}</p>
  <p class="analysis-card__summary">{{.Record.Summary}}</p>
  {{- if .Citations}}
  <ul class="analysis-card__citations">
    {{- range .Citations}}
    <li><a href="{{.}}" rel="noopener">{{.}}</a></li>
    {{- end}}
  </ul>
  {{- end}}
</div>{{end}}`

const analysisCardTemplate = `<div class="analysis-card">
  <ul class="analysis-card__scores">
    <li>Playing time: {{.Record.PlayingTimeScore}}</li>
    <li>Injury risk: {{.Record.InjuryRiskScore}}/5</li>
    <li>Breakout: {{.Record.BreakoutScore}}/5</li>
    <li>Bust: {{.Record.BustScore}}/5</li>
  </ul>
  <p class="analysis-card__changes">{{.Record.KeyChanges}}</p>
  <p class="analysis-card__outlook">{{.Record.Outlook}}</p>
  <p class="analysis-card__summary">{{.Record.Summary}}</p>
  {{- if .Citations}}
  <ul class="analysis-card__citations">
    {{- range .Citations}}
    <li><a href="{{.}}" rel="noopener">{{.}}</a></li>
    {{- end}}
  </ul>
  {{- end}}
</div>`
