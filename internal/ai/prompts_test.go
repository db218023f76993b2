package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/commitsage/internal/models"
)

func intPtr(v int) *int { return &v }

const tokenPatch = "@@ -176,13 +176,14 @@ def call_openai(content: str) -> str:\n" +
	"-    CHAR_PER_TOKEN = 3.7\n" +
	"+    CHAR_PER_TOKEN = 3.9\n"

func sampleCommit() models.CommitRecord {
	return models.NewCommitRecord(
		"3a82cb165fe5db358f84ec59fd98c6fa17e68bbe",
		"Update token logic\n\nLower the ratio to stay under the limit",
		&models.CommitStats{Additions: 1, Deletions: 1, Total: 2},
		[]models.FileChange{
			models.NewFileChange("api_calls.py", "modified", intPtr(1), intPtr(1), intPtr(2), tokenPatch),
		},
	)
}

func TestRenderPrompt(t *testing.T) {
	t.Run("Success - Render kind template", func(t *testing.T) {
		result, err := RenderPrompt("test", kindSummaryTemplateEN, PromptData{
			Intro:    "intro",
			KindName: "pull request text",
			Items:    []string{"first", "second"},
		})

		require.NoError(t, err)
		assert.Contains(t, result, "Here are the pull request text items")
		assert.Contains(t, result, "first\n\n\nsecond\n\n\n")
	})

	t.Run("Error - Invalid template syntax", func(t *testing.T) {
		result, err := RenderPrompt("invalid", "Hello {{.Name", PromptData{})

		assert.Error(t, err)
		assert.Empty(t, result)
		assert.Contains(t, err.Error(), "error parsing template")
	})

	t.Run("Error - Missing field in data", func(t *testing.T) {
		_, err := RenderPrompt("missing", "Missing: {{.NonExistent}}", PromptData{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "error executing template")
	})
}

func TestBuildCommitSummaryPrompt(t *testing.T) {
	t.Run("includes message, patches and pull requests", func(t *testing.T) {
		pulls := []models.PullRequestText{{Title: "Tune token estimate", Body: "Avoids 429s"}}

		prompt, err := BuildCommitSummaryPrompt("en", sampleCommit(), pulls)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(prompt, "I need a summary of code changes"))
		assert.Contains(t, prompt, "Commit message: Update token logic")
		assert.Contains(t, prompt, "Tune token estimate")
		assert.Contains(t, prompt, `"filename": "api_calls.py"`)
		assert.Contains(t, prompt, "CHAR_PER_TOKEN = 3.9")
		assert.NotContains(t, prompt, `"additions"`)
	})

	t.Run("no pull requests renders an empty list", func(t *testing.T) {
		prompt, err := BuildCommitSummaryPrompt("en", sampleCommit(), nil)

		require.NoError(t, err)
		assert.Contains(t, prompt, "Pull request text: []")
	})

	t.Run("spanish template", func(t *testing.T) {
		prompt, err := BuildCommitSummaryPrompt("es", sampleCommit(), nil)

		require.NoError(t, err)
		assert.Contains(t, prompt, "Mensaje del commit: Update token logic")
	})
}

func TestBuildCommitReviewPrompt(t *testing.T) {
	prompt, err := BuildCommitReviewPrompt("en", sampleCommit())

	require.NoError(t, err)
	assert.Contains(t, prompt, "sceptical software engineer")
	assert.Contains(t, prompt, "Commit message: Update token logic")
	assert.Contains(t, prompt, "CHAR_PER_TOKEN = 3.7")
}

func TestBuildKindSummaryPrompt(t *testing.T) {
	t.Run("uses the kind description", func(t *testing.T) {
		prompt, err := BuildKindSummaryPrompt("en", models.KindCodePatches, []string{"patch one"})

		require.NoError(t, err)
		assert.Contains(t, prompt, "Here are the code edits in the form of a code diff patch items")
		assert.Contains(t, prompt, "patch one")
	})

	t.Run("spanish kind name", func(t *testing.T) {
		prompt, err := BuildKindSummaryPrompt("es", models.KindPullRequests, []string{"pr"})

		require.NoError(t, err)
		assert.Contains(t, prompt, "texto de pull requests")
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		_, err := BuildKindSummaryPrompt("en", models.ChangeKind("issues"), nil)

		assert.Error(t, err)
	})
}

func TestBuildRangeSummaryPrompt(t *testing.T) {
	t.Run("messages", func(t *testing.T) {
		prompt, err := BuildRangeSummaryPrompt("en", models.SourceMessages, []string{"Update token logic", "Add tests"})

		require.NoError(t, err)
		assert.Contains(t, prompt, "Your input will be git commit messages.")
		assert.Contains(t, prompt, "- Update token logic\n- Add tests\n")
	})

	t.Run("patches", func(t *testing.T) {
		prompt, err := BuildRangeSummaryPrompt("en", models.SourcePatches, []string{tokenPatch})

		require.NoError(t, err)
		assert.Contains(t, prompt, "code patches from git commits")
		assert.Contains(t, prompt, tokenPatch)
	})

	t.Run("rejects unknown sources", func(t *testing.T) {
		_, err := BuildRangeSummaryPrompt("en", models.RangeSource("issues"), nil)

		assert.Error(t, err)
	})
}

func TestFormatRecord(t *testing.T) {
	t.Run("renders indented schema keys", func(t *testing.T) {
		out, err := FormatRecord(sampleCommit().MetadataView())

		require.NoError(t, err)
		assert.Contains(t, out, "\n  \"message\": \"Update token logic")
		assert.Contains(t, out, `"changes": 2`)
		assert.NotContains(t, out, "patch")
		assert.NotContains(t, out, "3a82cb1")
	})

	t.Run("nil files render as an empty array", func(t *testing.T) {
		out, err := FormatRecord(models.CommitRecord{Message: "m"})

		require.NoError(t, err)
		assert.Contains(t, out, `"files": []`)
	})
}

func TestFormatPullRequests(t *testing.T) {
	out, err := FormatPullRequests(nil)

	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}
