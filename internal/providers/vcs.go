package providers

import (
	"context"
	"strings"

	"github.com/thomas-vilte/commitsage/internal/config"
	"github.com/thomas-vilte/commitsage/internal/git"
	"github.com/thomas-vilte/commitsage/internal/logger"
	"github.com/thomas-vilte/commitsage/internal/vcs"
	"github.com/thomas-vilte/commitsage/internal/vcs/github"
)

// RepoInfoReader reads the repository identity of the local clone.
type RepoInfoReader interface {
	GetRepoInfo(ctx context.Context) (git.RepoInfo, error)
}

// NewCommitRepository creates the GitHub client for the configured repository.
func NewCommitRepository(cfg *config.Config) (vcs.CommitRepository, error) {
	if err := cfg.ValidateRepository(); err != nil {
		return nil, err
	}

	var opts []github.Option
	if cfg.GitHub.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(cfg.GitHub.BaseURL))
	}

	client, err := github.NewGitHubClient(cfg.Repo.Owner, cfg.Repo.Name, cfg.GitHub.Token, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ResolveRepository fills REPO_OWNER and REPO_NAME from the origin remote of
// the local clone when neither is configured. Remotes outside GitHub are ignored.
func ResolveRepository(ctx context.Context, cfg *config.Config, reader RepoInfoReader) {
	if strings.TrimSpace(cfg.Repo.Owner) != "" || strings.TrimSpace(cfg.Repo.Name) != "" {
		return
	}

	info, err := reader.GetRepoInfo(ctx)
	if err != nil {
		logger.Debug(ctx, "repository not detected from git remote", "error", err)
		return
	}
	if info.Provider != "github" {
		logger.Debug(ctx, "ignoring non-GitHub remote", "host", info.Host)
		return
	}

	cfg.Repo.Owner = info.Owner
	cfg.Repo.Name = info.Name
	logger.Info(ctx, "repository detected from git remote",
		"owner", info.Owner,
		"repo", info.Name)
}
