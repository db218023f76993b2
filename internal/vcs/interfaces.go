package vcs

import (
	"context"

	"github.com/thomas-vilte/commitsage/internal/models"
)

// CommitRepository reads commits of one repository from a hosting provider.
type CommitRepository interface {
	// GetCommit fetches one commit normalized to the closed commit schema.
	GetCommit(ctx context.Context, sha string) (models.CommitRecord, error)
	// ListCommitSHAs returns the ids of the commits in [query.Since, query.Until),
	// following every page of the listing in order.
	ListCommitSHAs(ctx context.Context, query models.CommitQuery) ([]string, error)
	// GetCommits lists the range and fetches every commit in listing order.
	// Any failure aborts the whole call without a partial result.
	GetCommits(ctx context.Context, query models.CommitQuery) ([]models.CommitRecord, error)
	// GetCommitPullRequests returns the text of the pull requests that contain the commit.
	GetCommitPullRequests(ctx context.Context, sha string) ([]models.PullRequestText, error)
}
