package summary

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/commitsage/internal/config"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
	"github.com/thomas-vilte/commitsage/internal/i18n"
	"github.com/thomas-vilte/commitsage/internal/models"
	"github.com/urfave/cli/v3"
)

func setupTest(t *testing.T, lang string) (*MockSummaryService, *MockSummaryServiceFactory, *i18n.Translations, *config.Config) {
	t.Helper()
	color.NoColor = true

	translations, err := i18n.NewTranslations(lang)
	require.NoError(t, err)

	cfg := &config.Config{Repo: config.RepoConfig{Owner: "awcrosby", Name: "galaxy-importer"}}
	return new(MockSummaryService), new(MockSummaryServiceFactory), translations, cfg
}

func run(t *testing.T, cmd *cli.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.Writer = &out
	err := cmd.Run(context.Background(), args)
	return out.String(), err
}

func TestCommitCommand(t *testing.T) {
	const sha = "3a82cb1"

	t.Run("should print the commit summary", func(t *testing.T) {
		svc, f, trans, cfg := setupTest(t, "en")
		f.On("CreateSummaryService", mock.Anything).Return(svc, nil)
		svc.On("SummarizeCommit", mock.Anything, sha).Return("Refactors the importer.", nil)

		out, err := run(t, NewCommitCommand(f).CreateCommand(trans, cfg), "commit", "--sha", sha)

		require.NoError(t, err)
		assert.Equal(t, "\nSummary of commit 3a82cb1\nRefactors the importer.\n", out)
		f.AssertExpectations(t)
		svc.AssertExpectations(t)
	})

	t.Run("should review when --review is set", func(t *testing.T) {
		svc, f, trans, cfg := setupTest(t, "es")
		f.On("CreateSummaryService", mock.Anything).Return(svc, nil)
		svc.On("ReviewCommit", mock.Anything, sha).Return("El mensaje es correcto.", nil)

		out, err := run(t, NewCommitCommand(f).CreateCommand(trans, cfg), "commit", "--sha", sha, "--review")

		require.NoError(t, err)
		assert.Contains(t, out, "Revisión del commit 3a82cb1")
		assert.Contains(t, out, "El mensaje es correcto.")
		svc.AssertNotCalled(t, "SummarizeCommit", mock.Anything, mock.Anything)
	})

	t.Run("should fall back to the configured sha", func(t *testing.T) {
		svc, f, trans, cfg := setupTest(t, "en")
		cfg.Repo.CommitSHA = sha
		f.On("CreateSummaryService", mock.Anything).Return(svc, nil)
		svc.On("SummarizeCommit", mock.Anything, sha).Return("ok", nil)

		_, err := run(t, NewCommitCommand(f).CreateCommand(trans, cfg), "commit")

		require.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("should fail without a sha before creating the service", func(t *testing.T) {
		_, f, trans, cfg := setupTest(t, "en")

		_, err := run(t, NewCommitCommand(f).CreateCommand(trans, cfg), "commit")

		assert.ErrorIs(t, err, domainErrors.ErrCommitSHAMissing)
		f.AssertNotCalled(t, "CreateSummaryService", mock.Anything)
	})

	t.Run("should fail when factory returns error", func(t *testing.T) {
		_, f, trans, cfg := setupTest(t, "en")
		f.On("CreateSummaryService", mock.Anything).Return(nil, domainErrors.ErrOpenAIKeyMissing)

		_, err := run(t, NewCommitCommand(f).CreateCommand(trans, cfg), "commit", "--sha", sha)

		require.Error(t, err)
		assert.ErrorIs(t, err, domainErrors.ErrOpenAIKeyMissing)
		assert.Contains(t, err.Error(), "Could not prepare the summary service")
	})

	t.Run("should propagate service errors", func(t *testing.T) {
		svc, f, trans, cfg := setupTest(t, "en")
		upstream := domainErrors.NewUpstreamError("github", 404, "No commit found for SHA")
		f.On("CreateSummaryService", mock.Anything).Return(svc, nil)
		svc.On("SummarizeCommit", mock.Anything, sha).Return("", upstream)

		_, err := run(t, NewCommitCommand(f).CreateCommand(trans, cfg), "commit", "--sha", sha)

		var upErr *domainErrors.UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, 404, upErr.StatusCode)
		assert.Contains(t, err.Error(), "Could not summarize commit 3a82cb1")
	})
}

func TestRangeCommand(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should summarize messages by default", func(t *testing.T) {
		svc, f, trans, cfg := setupTest(t, "en")
		query := models.CommitQuery{Since: since, Until: until, Author: "awcrosby"}
		f.On("CreateSummaryService", mock.Anything).Return(svc, nil)
		svc.On("SummarizeRange", mock.Anything, query, models.SourceMessages).Return("Worked on the importer.", nil)

		out, err := run(t, NewRangeCommand(f).CreateCommand(trans, cfg),
			"range", "--since", "2024-01-01", "--until", "2024-02-01", "--author", "awcrosby")

		require.NoError(t, err)
		assert.Equal(t, "\nSummary of commits in awcrosby/galaxy-importer\nWorked on the importer.\n", out)
		svc.AssertExpectations(t)
	})

	t.Run("should pass the patches source", func(t *testing.T) {
		svc, f, trans, cfg := setupTest(t, "en")
		f.On("CreateSummaryService", mock.Anything).Return(svc, nil)
		svc.On("SummarizeRange", mock.Anything, mock.Anything, models.SourcePatches).Return("ok", nil)

		_, err := run(t, NewRangeCommand(f).CreateCommand(trans, cfg), "range", "--source", "patches")

		require.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("should reject an unknown source", func(t *testing.T) {
		_, f, trans, cfg := setupTest(t, "en")

		_, err := run(t, NewRangeCommand(f).CreateCommand(trans, cfg), "range", "--source", "diffs")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid --source 'diffs'")
		f.AssertNotCalled(t, "CreateSummaryService", mock.Anything)
	})

	t.Run("should reject an inverted range", func(t *testing.T) {
		_, f, trans, cfg := setupTest(t, "en")

		_, err := run(t, NewRangeCommand(f).CreateCommand(trans, cfg),
			"range", "--since", "2024-03-01", "--until", "2024-02-01")

		assert.ErrorIs(t, err, domainErrors.ErrInvalidDateRange)
		f.AssertNotCalled(t, "CreateSummaryService", mock.Anything)
	})

	t.Run("should propagate an empty range", func(t *testing.T) {
		svc, f, trans, cfg := setupTest(t, "en")
		f.On("CreateSummaryService", mock.Anything).Return(svc, nil)
		svc.On("SummarizeRange", mock.Anything, mock.Anything, models.SourceMessages).Return("", domainErrors.ErrNoCommitsInRange)

		_, err := run(t, NewRangeCommand(f).CreateCommand(trans, cfg), "range")

		assert.ErrorIs(t, err, domainErrors.ErrNoCommitsInRange)
	})
}

func TestDigestCommand(t *testing.T) {
	digest := models.RangeDigest{
		Titles: []string{"Add importer", "Fix lint"},
		Summaries: []models.KindSummary{
			{Kind: models.KindCommitMessages, Summary: "Messages summary."},
			{Kind: models.KindPullRequests, Summary: "PR summary."},
			{Kind: models.KindCodePatches, Summary: "Patch summary."},
		},
	}

	t.Run("should print titles then one summary per kind", func(t *testing.T) {
		svc, f, trans, cfg := setupTest(t, "en")
		f.On("CreateSummaryService", mock.Anything).Return(svc, nil)
		svc.On("DigestRange", mock.Anything, mock.Anything).Return(digest, nil)

		out, err := run(t, NewDigestCommand(f).CreateCommand(trans, cfg), "digest", "--since", "2024-01-01")

		require.NoError(t, err)
		want := "\n2 commits\n- Add importer\n- Fix lint\n" +
			"\nSummary of commit messages\nMessages summary.\n" +
			"\nSummary of pull requests\nPR summary.\n" +
			"\nSummary of code patches\nPatch summary.\n"
		assert.Equal(t, want, out)
	})

	t.Run("should localize headings", func(t *testing.T) {
		svc, f, trans, cfg := setupTest(t, "es")
		f.On("CreateSummaryService", mock.Anything).Return(svc, nil)
		svc.On("DigestRange", mock.Anything, mock.Anything).Return(digest, nil)

		out, err := run(t, NewDigestCommand(f).CreateCommand(trans, cfg), "digest")

		require.NoError(t, err)
		assert.Contains(t, out, "Resumen de parches de código")
	})

	t.Run("should propagate service errors", func(t *testing.T) {
		svc, f, trans, cfg := setupTest(t, "en")
		f.On("CreateSummaryService", mock.Anything).Return(svc, nil)
		svc.On("DigestRange", mock.Anything, mock.Anything).
			Return(models.RangeDigest{}, domainErrors.NewPromptTooLargeError(5000, 4097))

		_, err := run(t, NewDigestCommand(f).CreateCommand(trans, cfg), "digest")

		var tooLarge *domainErrors.PromptTooLargeError
		require.True(t, errors.As(err, &tooLarge))
		assert.Contains(t, err.Error(), "Could not build the digest")
	})
}
