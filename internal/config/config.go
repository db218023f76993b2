package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
	"github.com/thomas-vilte/commitsage/internal/models"
)

type (
	// Config is read from the environment, optionally seeded by a .env file.
	Config struct {
		GitHub GitHubConfig
		AI     AIConfig
		Repo   RepoConfig

		Language string `env:"LANGUAGE" env-default:"en" env-description:"language of prompts and CLI output (en, es)"`
	}

	GitHubConfig struct {
		Token   string `env:"GITHUB_API_KEY" env-description:"GitHub token used for the REST API"`
		BaseURL string `env:"GITHUB_BASE_URL" env-description:"GitHub Enterprise API base URL"`
	}

	AIConfig struct {
		Provider      AI            `env:"AI_PROVIDER" env-default:"openai" env-description:"completion provider (openai, gemini)"`
		Model         Model         `env:"AI_MODEL" env-description:"model identifier, defaults per provider"`
		OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
		OpenAIBaseURL string        `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com"`
		GeminiAPIKey  string        `env:"GEMINI_API_KEY"`
		Timeout       time.Duration `env:"AI_TIMEOUT" env-default:"90s"`
		TokenLimit    int           `env:"AI_TOKEN_LIMIT" env-description:"overrides the model token budget"`
		CharsPerToken float64       `env:"CHARS_PER_TOKEN" env-default:"3.9"`
	}

	RepoConfig struct {
		Owner     string `env:"REPO_OWNER"`
		Name      string `env:"REPO_NAME"`
		Author    string `env:"REPO_AUTHOR"`
		StartDate string `env:"START_DATE" env-description:"YYYY-MM-DD or RFC3339"`
		EndDate   string `env:"END_DATE" env-description:"YYYY-MM-DD or RFC3339"`
		CommitSHA string `env:"COMMIT_SHA"`
	}
)

const defaultEnvFile = ".env"

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// LoadConfig reads the configuration from the environment. When envFile (or
// ./.env if envFile is empty) exists, its variables are exported first,
// whatever the file extension. Variables already set are not overridden.
func LoadConfig(envFile string) (*Config, error) {
	var cfg Config

	path := envFile
	if path == "" {
		path = defaultEnvFile
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("error reading env file %s: %w", path, err)
		}
	case envFile != "" || !errors.Is(statErr, os.ErrNotExist):
		return nil, fmt.Errorf("error reading env file %s: %w", path, statErr)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}

	cfg.Language = GetLocaleConfig(cfg.Language)
	if cfg.AI.Model == "" {
		cfg.AI.Model = DefaultModelForAI(cfg.AI.Provider)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Usage describes every supported environment variable.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

func validateConfig(cfg *Config) error {
	if !IsSupportedAI(cfg.AI.Provider) {
		return unsupportedProviderError(cfg.AI.Provider)
	}
	if cfg.AI.CharsPerToken <= 0 {
		return errors.New("CHARS_PER_TOKEN must be greater than 0")
	}
	if cfg.AI.TokenLimit < 0 {
		return errors.New("AI_TOKEN_LIMIT must not be negative")
	}
	if cfg.AI.Timeout < 0 {
		return errors.New("AI_TIMEOUT must not be negative")
	}
	return nil
}

// ValidateRepository checks everything the GitHub client needs.
func (c *Config) ValidateRepository() error {
	if strings.TrimSpace(c.GitHub.Token) == "" {
		return domainErrors.ErrGitHubTokenMissing
	}
	if strings.TrimSpace(c.Repo.Owner) == "" || strings.TrimSpace(c.Repo.Name) == "" {
		return domainErrors.ErrRepositoryMissing
	}
	return nil
}

// ValidateAI checks the credentials of the selected completion provider.
func (c *Config) ValidateAI() error {
	switch c.AI.Provider {
	case AIOpenAI:
		if strings.TrimSpace(c.AI.OpenAIAPIKey) == "" {
			return domainErrors.ErrOpenAIKeyMissing
		}
	case AIGemini:
		if strings.TrimSpace(c.AI.GeminiAPIKey) == "" {
			return domainErrors.ErrGeminiKeyMissing
		}
	default:
		return unsupportedProviderError(c.AI.Provider)
	}
	return nil
}

func unsupportedProviderError(provider AI) error {
	supported := make([]string, 0, len(SupportedAIs()))
	for _, ai := range SupportedAIs() {
		supported = append(supported, string(ai))
	}
	return domainErrors.ErrUnsupportedProvider.
		WithContext("detail", string(provider)).
		WithSuggestion(fmt.Sprintf("Set AI_PROVIDER to one of: %s", strings.Join(supported, ", ")))
}

// TokenLimit is the input budget for the configured model.
func (c *Config) TokenLimit() (int, error) {
	if c.AI.TokenLimit > 0 {
		return c.AI.TokenLimit, nil
	}
	limits, ok := LimitsForModel(c.AI.Model)
	if !ok {
		return 0, domainErrors.ErrUnknownModel.WithContext("detail", string(c.AI.Model))
	}
	return limits.InputBudget(), nil
}

// CommitQuery builds a range query from the given bounds, falling back to
// START_DATE, END_DATE and REPO_AUTHOR for empty arguments.
func (c *Config) CommitQuery(since, until, author string) (models.CommitQuery, error) {
	if since == "" {
		since = c.Repo.StartDate
	}
	if until == "" {
		until = c.Repo.EndDate
	}
	if author == "" {
		author = c.Repo.Author
	}

	var q models.CommitQuery
	var err error
	if q.Since, err = ParseDate(since); err != nil {
		return models.CommitQuery{}, domainErrors.ErrInvalidDateRange.WithError(err)
	}
	if q.Until, err = ParseDate(until); err != nil {
		return models.CommitQuery{}, domainErrors.ErrInvalidDateRange.WithError(err)
	}
	if !q.Since.IsZero() && !q.Until.IsZero() && !q.Since.Before(q.Until) {
		return models.CommitQuery{}, domainErrors.ErrInvalidDateRange.
			WithContext("detail", fmt.Sprintf("%s is not before %s", since, until))
	}
	q.Author = strings.TrimSpace(author)
	return q, nil
}

// ParseDate accepts RFC3339 timestamps or plain dates. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
