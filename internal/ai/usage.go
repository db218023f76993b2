package ai

import (
	"context"
	"time"

	"github.com/thomas-vilte/commitsage/internal/logger"
	"github.com/thomas-vilte/commitsage/internal/models"
	"github.com/thomas-vilte/commitsage/internal/services/cost"
)

// UsageReporter prices and logs the token usage of completed calls.
type UsageReporter struct {
	provider   string
	calculator *cost.Calculator
}

func NewUsageReporter(provider string) *UsageReporter {
	return &UsageReporter{
		provider:   provider,
		calculator: cost.NewCalculator(),
	}
}

// Report fills in model, duration and cost and logs the result at info level.
// A nil usage is logged with duration only.
func (r *UsageReporter) Report(ctx context.Context, model string, started time.Time, usage *models.TokenUsage) *models.TokenUsage {
	if usage == nil {
		usage = &models.TokenUsage{}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	usage.Model = model
	usage.DurationMs = time.Since(started).Milliseconds()
	usage.CostUSD = r.calculator.EstimateCost(r.provider, model, usage.InputTokens, usage.OutputTokens)

	logger.Info(ctx, "completion finished",
		"provider", r.provider,
		"model", model,
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
		"cost_usd", usage.CostUSD,
		"duration_ms", usage.DurationMs)

	return usage
}
