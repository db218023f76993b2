package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v57/github"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
	"github.com/thomas-vilte/commitsage/internal/logger"
	"github.com/thomas-vilte/commitsage/internal/models"
	"github.com/thomas-vilte/commitsage/internal/vcs"
	"golang.org/x/oauth2"
)

const (
	providerName = "github"
	perPage      = 100
)

var _ vcs.CommitRepository = (*GitHubClient)(nil)

type RepositoriesService interface {
	GetCommit(ctx context.Context, owner, repo, sha string, opts *github.ListOptions) (*github.RepositoryCommit, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error)
}

type PullRequestsService interface {
	ListPullRequestsWithCommit(ctx context.Context, owner, repo, sha string, opts *github.ListOptions) ([]*github.PullRequest, *github.Response, error)
}

type GitHubClient struct {
	repoService RepositoriesService
	prService   PullRequestsService
	owner       string
	repo        string
}

type options struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*options)

// WithBaseURL points the client at a GitHub Enterprise server or a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets the transport used when no token is given.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func NewGitHubClient(owner, repo, token string, opts ...Option) (*GitHubClient, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	httpClient := o.httpClient
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)
	if o.baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(o.baseURL, o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL %q: %w", o.baseURL, err)
		}
	}

	return NewGitHubClientWithServices(client.Repositories, client.PullRequests, owner, repo), nil
}

func NewGitHubClientWithServices(repoService RepositoriesService, prService PullRequestsService, owner, repo string) *GitHubClient {
	return &GitHubClient{
		repoService: repoService,
		prService:   prService,
		owner:       owner,
		repo:        repo,
	}
}

func (ghc *GitHubClient) GetCommit(ctx context.Context, sha string) (models.CommitRecord, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching commit",
		"sha", sha,
		"owner", ghc.owner,
		"repo", ghc.repo)

	commit, resp, err := ghc.repoService.GetCommit(ctx, ghc.owner, ghc.repo, sha, nil)
	if err != nil {
		log.Error("failed to fetch commit",
			"sha", sha,
			"error", err)
		return models.CommitRecord{}, fmt.Errorf("error fetching commit %s: %w", sha, upstreamError(resp, err))
	}

	record := toCommitRecord(commit, sha)
	if err := record.Validate(); err != nil {
		return models.CommitRecord{}, fmt.Errorf("commit %s: %w", sha, err)
	}

	log.Debug("commit fetched",
		"sha", sha,
		"files_count", len(record.Files))

	return record, nil
}

func (ghc *GitHubClient) ListCommitSHAs(ctx context.Context, query models.CommitQuery) ([]string, error) {
	log := logger.FromContext(ctx)

	opts := &github.CommitsListOptions{
		Since:       query.Since,
		Until:       query.Until,
		Author:      query.Author,
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	shas := make([]string, 0)
	seenPages := map[int]bool{}
	pages := 0

	for {
		commits, resp, err := ghc.repoService.ListCommits(ctx, ghc.owner, ghc.repo, opts)
		if err != nil {
			log.Error("failed to list commits",
				"page", opts.Page,
				"error", err)
			return nil, fmt.Errorf("error listing commits: %w", upstreamError(resp, err))
		}
		pages++
		seenPages[opts.Page] = true

		for _, c := range commits {
			if !beforeUntil(c, query.Until) {
				continue
			}
			shas = append(shas, c.GetSHA())
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		if seenPages[resp.NextPage] {
			log.Warn("pagination returned an already visited page, stopping",
				"page", resp.NextPage)
			break
		}
		opts.Page = resp.NextPage
	}

	log.Debug("commits listed",
		"pages", pages,
		"commits_count", len(shas))

	return shas, nil
}

func (ghc *GitHubClient) GetCommits(ctx context.Context, query models.CommitQuery) ([]models.CommitRecord, error) {
	shas, err := ghc.ListCommitSHAs(ctx, query)
	if err != nil {
		return nil, err
	}

	records := make([]models.CommitRecord, 0, len(shas))
	for _, sha := range shas {
		record, err := ghc.GetCommit(ctx, sha)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	logger.Info(ctx, "commits fetched",
		"commits_count", len(records))

	return records, nil
}

func (ghc *GitHubClient) GetCommitPullRequests(ctx context.Context, sha string) ([]models.PullRequestText, error) {
	opts := &github.ListOptions{PerPage: perPage}
	pulls := make([]models.PullRequestText, 0)

	for {
		prs, resp, err := ghc.prService.ListPullRequestsWithCommit(ctx, ghc.owner, ghc.repo, sha, opts)
		if err != nil {
			return nil, fmt.Errorf("error listing pull requests of commit %s: %w", sha, upstreamError(resp, err))
		}
		for _, pr := range prs {
			pulls = append(pulls, models.PullRequestText{
				Title: pr.GetTitle(),
				Body:  pr.GetBody(),
			})
		}
		if resp == nil || resp.NextPage == 0 || resp.NextPage == opts.Page {
			break
		}
		opts.Page = resp.NextPage
	}

	return pulls, nil
}

// toCommitRecord copies only the declared schema fields from the API payload.
func toCommitRecord(commit *github.RepositoryCommit, sha string) models.CommitRecord {
	var stats *models.CommitStats
	if s := commit.GetStats(); s != nil {
		stats = &models.CommitStats{
			Additions: s.GetAdditions(),
			Deletions: s.GetDeletions(),
			Total:     s.GetTotal(),
		}
	}

	files := make([]models.FileChange, 0, len(commit.Files))
	for _, f := range commit.Files {
		if f == nil {
			continue
		}
		files = append(files, models.NewFileChange(
			f.GetFilename(),
			f.GetStatus(),
			f.Additions,
			f.Deletions,
			f.Changes,
			f.GetPatch(),
		))
	}

	if commit.GetSHA() != "" {
		sha = commit.GetSHA()
	}
	return models.NewCommitRecord(sha, commit.GetCommit().GetMessage(), stats, files)
}

// beforeUntil reports whether the commit date is strictly before until. The
// API treats until as inclusive.
func beforeUntil(c *github.RepositoryCommit, until time.Time) bool {
	if until.IsZero() {
		return true
	}
	date := commitDate(c)
	if date.IsZero() {
		return true
	}
	return date.Before(until)
}

func commitDate(c *github.RepositoryCommit) time.Time {
	if d := c.GetCommit().GetCommitter().GetDate(); !d.IsZero() {
		return d.Time
	}
	return c.GetCommit().GetAuthor().GetDate().Time
}

// upstreamError turns API status failures into *UpstreamError and leaves
// transport failures untouched.
func upstreamError(resp *github.Response, err error) error {
	var (
		errResp   *github.ErrorResponse
		rateLimit *github.RateLimitError
		abuse     *github.AbuseRateLimitError
	)
	switch {
	case errors.As(err, &rateLimit):
		return domainErrors.NewUpstreamError(providerName, statusOf(rateLimit.Response, http.StatusForbidden), rateLimit.Message)
	case errors.As(err, &abuse):
		return domainErrors.NewUpstreamError(providerName, statusOf(abuse.Response, http.StatusForbidden), abuse.Message)
	case errors.As(err, &errResp):
		return domainErrors.NewUpstreamError(providerName, statusOf(errResp.Response, 0), errResp.Message)
	case resp != nil && resp.Response != nil && (resp.StatusCode < 200 || resp.StatusCode > 299):
		return domainErrors.NewUpstreamError(providerName, resp.StatusCode, err.Error())
	default:
		return err
	}
}

func statusOf(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}
