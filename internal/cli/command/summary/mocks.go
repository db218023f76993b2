package summary

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/commitsage/internal/models"
	"github.com/thomas-vilte/commitsage/internal/ports"
)

type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) SummarizeCommit(ctx context.Context, sha string) (string, error) {
	args := m.Called(ctx, sha)
	return args.String(0), args.Error(1)
}

func (m *MockSummaryService) ReviewCommit(ctx context.Context, sha string) (string, error) {
	args := m.Called(ctx, sha)
	return args.String(0), args.Error(1)
}

func (m *MockSummaryService) SummarizeRange(ctx context.Context, query models.CommitQuery, source models.RangeSource) (string, error) {
	args := m.Called(ctx, query, source)
	return args.String(0), args.Error(1)
}

func (m *MockSummaryService) DigestRange(ctx context.Context, query models.CommitQuery) (models.RangeDigest, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(models.RangeDigest), args.Error(1)
}

type MockSummaryServiceFactory struct {
	mock.Mock
}

func (m *MockSummaryServiceFactory) CreateSummaryService(ctx context.Context) (ports.SummaryService, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.SummaryService), args.Error(1)
}
