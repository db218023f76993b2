package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/thomas-vilte/commitsage/internal/ai"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
	"github.com/thomas-vilte/commitsage/internal/logger"
	"google.golang.org/genai"
)

const providerName = "gemini"

var _ ai.Completer = (*Completer)(nil)

type generateFunc func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error)

// Completer is the Gemini backend of ai.Completer.
type Completer struct {
	model      string
	budget     ai.TokenBudget
	usage      *ai.UsageReporter
	generateFn generateFunc
}

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	Budget  ai.TokenBudget
}

func NewCompleter(ctx context.Context, cfg Config) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrGeminiKeyMissing
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeConfiguration, "error creating gemini client", err)
	}

	c := newCompleter(cfg.Model, cfg.Budget, nil)
	c.generateFn = func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error) {
		return client.Models.GenerateContent(ctx, model, genai.Text(prompt), GetGenerateConfig())
	}
	return c, nil
}

func newCompleter(model string, budget ai.TokenBudget, fn generateFunc) *Completer {
	return &Completer{
		model:      model,
		budget:     budget,
		usage:      ai.NewUsageReporter(providerName),
		generateFn: fn,
	}
}

func (c *Completer) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContext(ctx)

	if err := c.budget.Check(prompt); err != nil {
		log.Warn("prompt rejected before sending",
			"provider", providerName,
			"estimated_tokens", c.budget.Estimate(prompt),
			"token_limit", c.budget.Limit)
		return "", err
	}

	log.Debug("calling gemini API",
		"model", c.model,
		"prompt_length", len(prompt))

	started := time.Now()
	resp, err := c.generateFn(ctx, c.model, prompt)
	if err != nil {
		log.Error("gemini API call failed",
			"error", err,
			"model", c.model)
		return "", mapError(err)
	}

	c.usage.Report(ctx, c.model, started, extractUsage(resp))

	text := formatResponse(resp)
	if text == "" {
		return "", domainErrors.NewMalformedResponseError(providerName, "response has no candidate text")
	}
	return text, nil
}

// mapError turns API status errors into *UpstreamError. Transport failures
// are wrapped as they are.
func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return domainErrors.NewUpstreamError(providerName, apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("gemini request failed: %w", err)
}
