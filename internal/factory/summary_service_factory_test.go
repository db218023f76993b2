package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/commitsage/internal/config"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
)

func validConfig() *config.Config {
	return &config.Config{
		GitHub: config.GitHubConfig{Token: "gh-token"},
		Repo:   config.RepoConfig{Owner: "awcrosby", Name: "galaxy-importer"},
		AI: config.AIConfig{
			Provider:      config.AIOpenAI,
			Model:         config.ModelGPT35Turbo,
			OpenAIAPIKey:  "sk-test",
			CharsPerToken: 4,
		},
		Language: config.LangEN,
	}
}

func TestSummaryServiceFactory_CreateSummaryService(t *testing.T) {
	t.Run("should build the service from a complete config", func(t *testing.T) {
		f := NewSummaryServiceFactory(validConfig())

		svc, err := f.CreateSummaryService(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("should fail without a GitHub token", func(t *testing.T) {
		cfg := validConfig()
		cfg.GitHub.Token = ""

		svc, err := NewSummaryServiceFactory(cfg).CreateSummaryService(context.Background())

		assert.ErrorIs(t, err, domainErrors.ErrGitHubTokenMissing)
		assert.Nil(t, svc)
	})

	t.Run("should fail without the provider key", func(t *testing.T) {
		cfg := validConfig()
		cfg.AI.OpenAIAPIKey = ""

		_, err := NewSummaryServiceFactory(cfg).CreateSummaryService(context.Background())

		assert.ErrorIs(t, err, domainErrors.ErrOpenAIKeyMissing)
	})
}
