package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return NewClient(&config.Config{
		LLMAPIKey:  "test-key",
		LLMBaseURL: server.URL,
		LLMModel:   "gpt-4o",
	}, log)
}

func completionWith(t *testing.T, content any) []byte {
	t.Helper()
	text, err := json.Marshal(content)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"id":    "chatcmpl-1",
		"model": "gpt-4o",
		"choices": []map[string]any{
			{
				"message":       map[string]string{"role": "assistant", "content": string(text)},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{"prompt_tokens": 120, "completion_tokens": 80},
	})
	require.NoError(t, err)
	return body
}

func sampleRequest() service.AnalysisRequest {
	return service.AnalysisRequest{
		PlayerName:   "Saquon Barkley",
		Season:       2025,
		Position:     domain.PositionRB,
		Team:         "PHI",
		RankOverall:  4,
		RankPosition: 2,
		Value:        48,
		Teammates: []domain.PlayerTeammate{
			{TeammateName: "Jalen Hurts", TeammatePosition: domain.PositionQB},
		},
	}
}

func TestClient_Analyze(t *testing.T) {
	var captured chatRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write(completionWith(t, map[string]any{
			"playing_time_score": 1,
			"injury_risk_score":  2,
			"breakout_score":     3,
			"bust_score":         1,
			"key_changes":        "Second season in the offense.",
			"outlook":            "Workhorse back.",
			"summary":            "Playing Time: 1/5 | Injury Risk: 2/5 | Breakout: 3/5 | Bust Risk: 1/5",
			"citations":          []string{"https://example.com/preview"},
		}))
	})

	result, err := client.Analyze(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, result.PlayingTimeScore)
	assert.Equal(t, 2, result.InjuryRiskScore)
	assert.Equal(t, 3, result.BreakoutScore)
	assert.Equal(t, []string{"https://example.com/preview"}, result.Citations)

	assert.Equal(t, "gpt-4o", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[1].Content, "Saquon Barkley")
	assert.Contains(t, captured.Messages[1].Content, "Jalen Hurts")
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
}

func TestClient_Analyze_MalformedCompletion(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "not json"}},
			},
		})
		w.Write(body)
	})

	_, err := client.Analyze(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing completion")
}

func TestClient_Analyze_Unauthorized(t *testing.T) {
	calls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "bad key", "type": "invalid_request_error"},
		})
	})

	_, err := client.Analyze(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid API credentials")
	assert.Equal(t, 1, calls, "auth failures are not retried")
}

func TestClient_IsHealthy(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.True(t, client.IsHealthy())
}
