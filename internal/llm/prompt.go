package llm

import (
	"fmt"
	"strings"

	"github.com/dom/fantasy-draft-assistant/internal/service"
)

const systemPrompt = `You are a fantasy football draft analyst. Assess the player's upcoming season and respond with a single JSON object containing exactly these keys:

- "playing_time_score": integer -5 to 5, expected change in playing time versus last season (negative means less).
- "injury_risk_score": integer 0 to 5, 0 means durable, 5 means severe injury concern.
- "breakout_score": integer 0 to 5, likelihood of significantly outperforming draft cost.
- "bust_score": integer 0 to 5, likelihood of significantly underperforming draft cost.
- "key_changes": one or two sentences on offseason changes (team, coaching, depth chart).
- "outlook": one or two sentences on expected role and production.
- "summary": a single line in the form "Playing Time: X/5 | Injury Risk: X/5 | Breakout: X/5 | Bust Risk: X/5".
- "citations": array of source URL strings, empty if none.

Be concise and factual. Do not include any text outside the JSON object.`

// buildPrompt renders the board context for one player into the user message.
func buildPrompt(req service.AnalysisRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Assess %s (%s, %s) for the %d fantasy season.\n", req.PlayerName, req.Position, req.Team, req.Season)
	fmt.Fprintf(&b, "Draft market: overall rank %d, %s rank %d, auction value $%d.\n",
		req.RankOverall, req.Position, req.RankPosition, req.Value)

	if len(req.Teammates) > 0 {
		b.WriteString("Notable offensive teammates:\n")
		for _, tm := range req.Teammates {
			fmt.Fprintf(&b, "- %s (%s)\n", tm.TeammateName, tm.TeammatePosition)
		}
	}

	return b.String()
}
