package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/thomas-vilte/commitsage/internal/ai"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
	"github.com/thomas-vilte/commitsage/internal/logger"
	"github.com/thomas-vilte/commitsage/internal/models"
)

const (
	providerName      = "openai"
	completionsPath   = "/v1/chat/completions"
	defaultBaseURL    = "https://api.openai.com"
	defaultTimeout    = 90 * time.Second
	maxErrorBodyBytes = 1 << 16
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ ai.Completer = (*Client)(nil)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Budget  ai.TokenBudget
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	apiKey     string
	endpoint   string
	model      string
	budget     ai.TokenBudget
	httpClient HTTPClient
	usage      *ai.UsageReporter
}

type Option func(*Client)

// WithHTTPClient replaces the default *http.Client, whose timeout comes from Config.
func WithHTTPClient(c HTTPClient) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrOpenAIKeyMissing
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		endpoint:   baseURL + completionsPath,
		model:      cfg.Model,
		budget:     cfg.Budget,
		httpClient: &http.Client{Timeout: timeout},
		usage:      ai.NewUsageReporter(providerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Generate sends the prompt as a single user message and returns the content
// of the first choice.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContext(ctx)

	if err := c.budget.Check(prompt); err != nil {
		log.Warn("prompt rejected before sending",
			"provider", providerName,
			"estimated_tokens", c.budget.Estimate(prompt),
			"token_limit", c.budget.Limit)
		return "", err
	}

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("error encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Debug("calling openai API",
		"model", c.model,
		"prompt_length", len(prompt))

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("openai API call failed",
			"error", err,
			"model", c.model)
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		upstream := domainErrors.NewUpstreamError(providerName, resp.StatusCode, errorMessage(resp.Body))
		log.Error("openai API returned an error",
			"status_code", resp.StatusCode,
			"error", upstream)
		return "", upstream
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", domainErrors.NewMalformedResponseError(providerName, fmt.Sprintf("invalid JSON: %v", err))
	}
	if len(payload.Choices) == 0 || payload.Choices[0].Message == nil || payload.Choices[0].Message.Content == nil {
		return "", domainErrors.NewMalformedResponseError(providerName, "missing choices[0].message.content")
	}

	var usage *models.TokenUsage
	if payload.Usage != nil {
		usage = &models.TokenUsage{
			InputTokens:  payload.Usage.PromptTokens,
			OutputTokens: payload.Usage.CompletionTokens,
			TotalTokens:  payload.Usage.TotalTokens,
		}
	}
	c.usage.Report(ctx, c.model, started, usage)

	return *payload.Choices[0].Message.Content, nil
}

// errorMessage extracts error.message from an error body, falling back to the
// trimmed raw body when it is not the documented shape.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	var parsed errorResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
