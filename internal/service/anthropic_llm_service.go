package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/capisen/backoffice/config"
	"github.com/capisen/backoffice/internal/dto"
	"github.com/rs/zerolog/log"
)

const (
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	anthropicVersion  = "2023-06-01"
	completionModel   = "claude-opus-4-6"
	maxTokens         = 1500
)

// UpstreamError carries the message reported by the completion API in a
// non-success response body.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string { return e.Message }

// CompletionService sends an ordered transcript to the text-completion
// endpoint and returns the single assistant reply.
type CompletionService interface {
	Complete(ctx context.Context, system string, messages []dto.Message) (string, error)
}

type anthropicService struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewAnthropicService builds the completions client. A missing API key is
// tolerated at startup; calls then fail with a configuration error.
func NewAnthropicService(cfg *config.Config) CompletionService {
	if cfg.AnthropicApiKey == "" {
		log.Warn().Msg("ANTHROPIC_API_KEY is not set. Completion service will be non-functional.")
	}
	return &anthropicService{
		apiKey:   cfg.AnthropicApiKey,
		endpoint: anthropicEndpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type completionRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []dto.Message `json:"messages"`
}

type completionResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *anthropicService) Complete(ctx context.Context, system string, messages []dto.Message) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("anthropic api key is not configured")
	}

	payload, err := json.Marshal(completionRequest{
		Model:     completionModel,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Completion request transport failure")
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	var decoded completionResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Surface the upstream message when the error body decodes.
		if jsonErr := json.Unmarshal(body, &decoded); jsonErr == nil && decoded.Error != nil && decoded.Error.Message != "" {
			return "", &UpstreamError{Message: decoded.Error.Message}
		}
		log.Error().Int("status", resp.StatusCode).Msg("Completion api returned non-success status")
		return "", fmt.Errorf("completion api returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	// An empty content array means the model produced nothing; that is not
	// a transport error and yields an empty result string.
	if len(decoded.Content) == 0 {
		log.Warn().Msg("Completion api returned no content blocks")
		return "", nil
	}
	return decoded.Content[0].Text, nil
}
