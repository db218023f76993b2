package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/commitsage/internal/ai"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
	"google.golang.org/genai"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     12,
			CandidatesTokenCount: 8,
			TotalTokenCount:      20,
		},
	}
}

func TestCompleter_Generate(t *testing.T) {
	budget := ai.NewTokenBudget(4, 100)

	t.Run("returns candidate text", func(t *testing.T) {
		var gotModel, gotPrompt string
		c := newCompleter("gemini-2.5-flash", budget, func(_ context.Context, model, prompt string) (*genai.GenerateContentResponse, error) {
			gotModel, gotPrompt = model, prompt
			return textResponse("Lowers the chars-per-token ratio."), nil
		})

		text, err := c.Generate(context.Background(), "summarize this")

		require.NoError(t, err)
		assert.Equal(t, "Lowers the chars-per-token ratio.", text)
		assert.Equal(t, "gemini-2.5-flash", gotModel)
		assert.Equal(t, "summarize this", gotPrompt)
	})

	t.Run("rejects oversized prompts without calling the API", func(t *testing.T) {
		called := false
		c := newCompleter("gemini-2.5-flash", budget, func(context.Context, string, string) (*genai.GenerateContentResponse, error) {
			called = true
			return nil, nil
		})

		_, err := c.Generate(context.Background(), strings.Repeat("x", 404))

		var tooLarge *domainErrors.PromptTooLargeError
		require.True(t, errors.As(err, &tooLarge))
		assert.Equal(t, 101, tooLarge.Estimated)
		assert.False(t, called)
	})

	t.Run("maps API errors to upstream errors", func(t *testing.T) {
		c := newCompleter("gemini-2.5-flash", budget, func(context.Context, string, string) (*genai.GenerateContentResponse, error) {
			return nil, genai.APIError{Code: 429, Message: "Resource has been exhausted", Status: "RESOURCE_EXHAUSTED"}
		})

		_, err := c.Generate(context.Background(), "prompt")

		var upstream *domainErrors.UpstreamError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, "gemini", upstream.Provider)
		assert.Equal(t, 429, upstream.StatusCode)
		assert.Equal(t, "Resource has been exhausted", upstream.Message)
	})

	t.Run("transport errors are wrapped", func(t *testing.T) {
		transportErr := errors.New("dial tcp: connection refused")
		c := newCompleter("gemini-2.5-flash", budget, func(context.Context, string, string) (*genai.GenerateContentResponse, error) {
			return nil, transportErr
		})

		_, err := c.Generate(context.Background(), "prompt")

		assert.ErrorIs(t, err, transportErr)
		var upstream *domainErrors.UpstreamError
		assert.False(t, errors.As(err, &upstream))
	})

	t.Run("empty candidates are malformed", func(t *testing.T) {
		c := newCompleter("gemini-2.5-flash", budget, func(context.Context, string, string) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{}, nil
		})

		_, err := c.Generate(context.Background(), "prompt")

		var malformed *domainErrors.MalformedResponseError
		assert.True(t, errors.As(err, &malformed))
	})
}

func TestNewCompleter_RequiresKey(t *testing.T) {
	_, err := NewCompleter(context.Background(), Config{Model: "gemini-2.5-flash"})

	assert.ErrorIs(t, err, domainErrors.ErrGeminiKeyMissing)
}
