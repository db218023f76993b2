package github

import (
	"context"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/mock"
)

type MockRepoService struct {
	mock.Mock
}

func (m *MockRepoService) GetCommit(ctx context.Context, owner, repo, sha string, opts *github.ListOptions) (*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, sha, opts)
	var commit *github.RepositoryCommit
	if c := args.Get(0); c != nil {
		commit = c.(*github.RepositoryCommit)
	}
	var resp *github.Response
	if r := args.Get(1); r != nil {
		resp = r.(*github.Response)
	}
	return commit, resp, args.Error(2)
}

func (m *MockRepoService) ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	// opts is mutated between pages, so the page is recorded by value.
	args := m.Called(ctx, owner, repo, opts.Page)
	var commits []*github.RepositoryCommit
	if c := args.Get(0); c != nil {
		commits = c.([]*github.RepositoryCommit)
	}
	var resp *github.Response
	if r := args.Get(1); r != nil {
		resp = r.(*github.Response)
	}
	return commits, resp, args.Error(2)
}

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) ListPullRequestsWithCommit(ctx context.Context, owner, repo, sha string, opts *github.ListOptions) ([]*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, sha, opts.Page)
	var prs []*github.PullRequest
	if p := args.Get(0); p != nil {
		prs = p.([]*github.PullRequest)
	}
	var resp *github.Response
	if r := args.Get(1); r != nil {
		resp = r.(*github.Response)
	}
	return prs, resp, args.Error(2)
}
