package providers

import (
	"context"

	"github.com/thomas-vilte/commitsage/internal/ai"
	"github.com/thomas-vilte/commitsage/internal/ai/gemini"
	"github.com/thomas-vilte/commitsage/internal/ai/openai"
	"github.com/thomas-vilte/commitsage/internal/config"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
)

// NewCompleter creates a Completer for the configured provider, sized to the
// model's token budget.
func NewCompleter(ctx context.Context, cfg *config.Config) (ai.Completer, error) {
	if err := cfg.ValidateAI(); err != nil {
		return nil, err
	}
	limit, err := cfg.TokenLimit()
	if err != nil {
		return nil, err
	}
	budget := ai.NewTokenBudget(cfg.AI.CharsPerToken, limit)

	switch cfg.AI.Provider {
	case config.AIOpenAI:
		client, err := openai.NewClient(openai.Config{
			APIKey:  cfg.AI.OpenAIAPIKey,
			BaseURL: cfg.AI.OpenAIBaseURL,
			Model:   string(cfg.AI.Model),
			Timeout: cfg.AI.Timeout,
			Budget:  budget,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.AIGemini:
		completer, err := gemini.NewCompleter(ctx, gemini.Config{
			APIKey:  cfg.AI.GeminiAPIKey,
			Model:   string(cfg.AI.Model),
			Timeout: cfg.AI.Timeout,
			Budget:  budget,
		})
		if err != nil {
			return nil, err
		}
		return completer, nil
	default:
		return nil, domainErrors.ErrUnsupportedProvider.WithContext("detail", string(cfg.AI.Provider))
	}
}
