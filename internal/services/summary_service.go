package services

import (
	"context"
	"fmt"
	"time"

	"github.com/thomas-vilte/commitsage/internal/ai"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
	"github.com/thomas-vilte/commitsage/internal/logger"
	"github.com/thomas-vilte/commitsage/internal/models"
	"github.com/thomas-vilte/commitsage/internal/ports"
	"github.com/thomas-vilte/commitsage/internal/vcs"
)

var _ ports.SummaryService = (*SummaryService)(nil)

type SummaryService struct {
	repo      vcs.CommitRepository
	completer ai.Completer
	lang      string
}

type SummaryOption func(*SummaryService)

func WithCommitRepository(repo vcs.CommitRepository) SummaryOption {
	return func(s *SummaryService) {
		s.repo = repo
	}
}

func WithCompleter(c ai.Completer) SummaryOption {
	return func(s *SummaryService) {
		s.completer = c
	}
}

func WithLanguage(lang string) SummaryOption {
	return func(s *SummaryService) {
		s.lang = lang
	}
}

func NewSummaryService(opts ...SummaryOption) *SummaryService {
	s := &SummaryService{lang: "en"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SummarizeCommit summarizes one commit from its message, patches and the
// text of its pull requests.
func (s *SummaryService) SummarizeCommit(ctx context.Context, sha string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if sha == "" {
		return "", domainErrors.ErrCommitSHAMissing
	}
	ctx = logger.With(ctx, "sha", sha)
	log := logger.FromContext(ctx)

	log.Info("summarizing commit")

	record, err := s.repo.GetCommit(ctx, sha)
	if err != nil {
		return "", err
	}
	pulls, err := s.repo.GetCommitPullRequests(ctx, sha)
	if err != nil {
		return "", err
	}

	prompt, err := ai.BuildCommitSummaryPrompt(s.lang, record, pulls)
	if err != nil {
		return "", fmt.Errorf("error building commit summary prompt: %w", err)
	}

	log.Debug("commit summary prompt built",
		"prompt_length", len(prompt),
		"pull_requests", len(pulls))

	return s.completer.Generate(ctx, prompt)
}

// ReviewCommit asks the model whether the commit message tells the truth about the diff.
func (s *SummaryService) ReviewCommit(ctx context.Context, sha string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if sha == "" {
		return "", domainErrors.ErrCommitSHAMissing
	}
	ctx = logger.With(ctx, "sha", sha)

	logger.Info(ctx, "reviewing commit")

	record, err := s.repo.GetCommit(ctx, sha)
	if err != nil {
		return "", err
	}

	prompt, err := ai.BuildCommitReviewPrompt(s.lang, record)
	if err != nil {
		return "", fmt.Errorf("error building commit review prompt: %w", err)
	}

	return s.completer.Generate(ctx, prompt)
}

// SummarizeRange writes a resume-style paragraph from every commit in the range.
func (s *SummaryService) SummarizeRange(ctx context.Context, query models.CommitQuery, source models.RangeSource) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	log := logger.FromContext(ctx)

	records, err := s.fetchRange(ctx, query)
	if err != nil {
		return "", err
	}

	items := make([]string, 0, len(records))
	for _, record := range records {
		switch source {
		case models.SourcePatches:
			formatted, err := ai.FormatRecord(record.PatchView())
			if err != nil {
				return "", err
			}
			items = append(items, formatted)
		default:
			items = append(items, record.Message)
		}
	}

	prompt, err := ai.BuildRangeSummaryPrompt(s.lang, source, items)
	if err != nil {
		return "", fmt.Errorf("error building range summary prompt: %w", err)
	}

	log.Info("summarizing commit range",
		"commits_count", len(records),
		"source", source)

	return s.completer.Generate(ctx, prompt)
}

// DigestRange lists the commit titles of the range and writes one summary
// per change kind.
func (s *SummaryService) DigestRange(ctx context.Context, query models.CommitQuery) (models.RangeDigest, error) {
	if err := s.ready(); err != nil {
		return models.RangeDigest{}, err
	}

	records, err := s.fetchRange(ctx, query)
	if err != nil {
		return models.RangeDigest{}, err
	}

	digest := models.RangeDigest{
		Titles:    make([]string, 0, len(records)),
		Summaries: make([]models.KindSummary, 0, len(models.ChangeKinds())),
	}
	items := map[models.ChangeKind][]string{}

	for _, record := range records {
		digest.Titles = append(digest.Titles, record.Title())
		items[models.KindCommitMessages] = append(items[models.KindCommitMessages], record.Message)

		pulls, err := s.repo.GetCommitPullRequests(ctx, record.SHA)
		if err != nil {
			return models.RangeDigest{}, err
		}
		pullText, err := ai.FormatPullRequests(pulls)
		if err != nil {
			return models.RangeDigest{}, err
		}
		items[models.KindPullRequests] = append(items[models.KindPullRequests], pullText)

		patches, err := ai.FormatRecord(record.PatchView())
		if err != nil {
			return models.RangeDigest{}, err
		}
		items[models.KindCodePatches] = append(items[models.KindCodePatches], patches)
	}

	for _, kind := range models.ChangeKinds() {
		prompt, err := ai.BuildKindSummaryPrompt(s.lang, kind, items[kind])
		if err != nil {
			return models.RangeDigest{}, fmt.Errorf("error building %s prompt: %w", kind, err)
		}

		logger.Info(ctx, "summarizing change kind",
			"kind", kind,
			"commits_count", len(records))

		summary, err := s.completer.Generate(ctx, prompt)
		if err != nil {
			return models.RangeDigest{}, err
		}
		digest.Summaries = append(digest.Summaries, models.KindSummary{Kind: kind, Summary: summary})
	}

	return digest, nil
}

func (s *SummaryService) fetchRange(ctx context.Context, query models.CommitQuery) ([]models.CommitRecord, error) {
	if !query.Since.IsZero() && !query.Until.IsZero() && !query.Since.Before(query.Until) {
		return nil, domainErrors.ErrInvalidDateRange.
			WithContext("detail", fmt.Sprintf("%s is not before %s", query.Since.Format(time.RFC3339), query.Until.Format(time.RFC3339)))
	}

	records, err := s.repo.GetCommits(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domainErrors.ErrNoCommitsInRange
	}
	return records, nil
}

func (s *SummaryService) ready() error {
	if s.repo == nil {
		return domainErrors.NewAppError(domainErrors.TypeInternal, "commit repository not configured", nil)
	}
	if s.completer == nil {
		return domainErrors.NewAppError(domainErrors.TypeInternal, "completion client not configured", nil)
	}
	return nil
}
