package ports

import (
	"context"

	"github.com/thomas-vilte/commitsage/internal/models"
)

// SummaryService turns repository history into model-written summaries.
type SummaryService interface {
	SummarizeCommit(ctx context.Context, sha string) (string, error)
	ReviewCommit(ctx context.Context, sha string) (string, error)
	SummarizeRange(ctx context.Context, query models.CommitQuery, source models.RangeSource) (string, error)
	DigestRange(ctx context.Context, query models.CommitQuery) (models.RangeDigest, error)
}
