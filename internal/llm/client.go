package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Client talks to an OpenAI-compatible chat completions endpoint and turns
// the reply into a structured risk assessment. It implements service.Analyzer.
type Client struct {
	httpClient    *http.Client
	log           *logrus.Logger
	apiKey        string
	baseURL       string
	model         string
	limiter       *rate.Limiter
	breaker       *gobreaker.CircuitBreaker
	retryAttempts int
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "llm-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"circuit":    name,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Info("LLM circuit breaker state changed")
		},
	})

	return &Client{
		httpClient:    &http.Client{Timeout: 90 * time.Second},
		log:           log,
		apiKey:        cfg.LLMAPIKey,
		baseURL:       cfg.LLMBaseURL,
		model:         cfg.LLMModel,
		limiter:       rate.NewLimiter(rate.Every(time.Second), 1),
		breaker:       breaker,
		retryAttempts: 3,
	}
}

// Analyze asks the model for a draft risk assessment and parses its JSON reply.
func (c *Client) Analyze(ctx context.Context, req service.AnalysisRequest) (*service.AnalysisResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature:    0.3,
		MaxTokens:      2000,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	response, err := c.breaker.Execute(func() (interface{}, error) {
		return c.send(ctx, request)
	})
	if err != nil {
		return nil, err
	}
	chat := response.(*chatResponse)

	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("empty completion for %s", req.PlayerName)
	}

	var result service.AnalysisResult
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("parsing completion for %s: %w", req.PlayerName, err)
	}

	c.log.WithFields(logrus.Fields{
		"player":            req.PlayerName,
		"model":             chat.Model,
		"prompt_tokens":     chat.Usage.PromptTokens,
		"completion_tokens": chat.Usage.CompletionTokens,
	}).Debug("analysis completion received")

	return &result, nil
}

// IsHealthy reports whether the circuit to the API is closed.
func (c *Client) IsHealthy() bool {
	return c.breaker.State() == gobreaker.StateClosed
}

func (c *Client) send(ctx context.Context, request chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusOK {
			var chat chatResponse
			err := json.NewDecoder(resp.Body).Decode(&chat)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to decode response: %w", err)
			}
			return &chat, nil
		}

		var apiErr apiError
		decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr)
		resp.Body.Close()
		if decodeErr != nil {
			lastErr = fmt.Errorf("request failed with status %d", resp.StatusCode)
			continue
		}

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, fmt.Errorf("invalid API credentials: %s", apiErr.Error.Message)
		case http.StatusBadRequest:
			return nil, fmt.Errorf("bad request: %s", apiErr.Error.Message)
		case http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited: %s", apiErr.Error.Message)
		default:
			lastErr = fmt.Errorf("unexpected error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", c.retryAttempts, lastErr)
}
