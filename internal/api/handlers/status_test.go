package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putStatus(t *testing.T, ts *testutil.TestServer, name string, body map[string]any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, ts.APIURL("/players/"+name+"/status"), bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestStatusHandler_Get_DefaultsToAllFalse(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/players/Justin Jefferson/status"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status domain.DraftStatus
	testutil.AssertJSONResponse(t, resp, &status)
	assert.Equal(t, "Justin Jefferson", status.PlayerName)
	assert.Equal(t, 2025, status.Season)
	assert.False(t, status.Target)
	assert.False(t, status.Drafted)
}

func TestStatusHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := putStatus(t, ts, "Saquon Barkley", map[string]any{"target": true})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status domain.DraftStatus
	testutil.AssertJSONResponse(t, resp, &status)
	assert.True(t, status.Target)

	// Another manager drafts them.
	resp = putStatus(t, ts, "Saquon Barkley", map[string]any{
		"drafted":      true,
		"draftedBy":    "Bob",
		"draftedPrice": 95,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	testutil.AssertJSONResponse(t, resp, &status)
	assert.True(t, status.Drafted)
	assert.False(t, status.Target)
	assert.Equal(t, "Bob", status.DraftedBy)
	assert.Equal(t, 95, status.DraftedPrice)
}

func TestStatusHandler_Update_PartialLeavesOtherFields(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := putStatus(t, ts, "Bijan Robinson", map[string]any{"notes": "Watch the preseason."})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = putStatus(t, ts, "Bijan Robinson", map[string]any{"avoid": true})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status domain.DraftStatus
	testutil.AssertJSONResponse(t, resp, &status)
	assert.True(t, status.Avoid)
	assert.Equal(t, "Watch the preseason.", status.Notes)
}

func TestStatusHandler_Update_Validation(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name string
		url  string
		body string
	}{
		{"malformed JSON", ts.APIURL("/players/Josh Allen/status"), `{"target":`},
		{"bad season", ts.APIURL("/players/Josh Allen/status?season=abc"), `{"target":true}`},
		{"negative price", ts.APIURL("/players/Josh Allen/status"), `{"draftedPrice":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPut, tt.url, bytes.NewReader([]byte(tt.body)))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
