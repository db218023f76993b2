package ai

import (
	"context"
)

// Completer sends a single prompt to a language model and returns the reply text.
type Completer interface {
	// Generate checks the prompt against the token budget before any network
	// activity and performs exactly one request. Nothing is retried.
	Generate(ctx context.Context, prompt string) (string, error)
}
