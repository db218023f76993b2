package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/commitsage/internal/models"
)

type (
	MockCommitRepository struct {
		mock.Mock
	}

	MockCompleter struct {
		mock.Mock
	}
)

func (m *MockCommitRepository) GetCommit(ctx context.Context, sha string) (models.CommitRecord, error) {
	args := m.Called(ctx, sha)
	return args.Get(0).(models.CommitRecord), args.Error(1)
}

func (m *MockCommitRepository) ListCommitSHAs(ctx context.Context, query models.CommitQuery) ([]string, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCommitRepository) GetCommits(ctx context.Context, query models.CommitQuery) ([]models.CommitRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CommitRecord), args.Error(1)
}

func (m *MockCommitRepository) GetCommitPullRequests(ctx context.Context, sha string) ([]models.PullRequestText, error) {
	args := m.Called(ctx, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PullRequestText), args.Error(1)
}

func (m *MockCompleter) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
