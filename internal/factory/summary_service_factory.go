package factory

import (
	"context"

	"github.com/thomas-vilte/commitsage/internal/config"
	"github.com/thomas-vilte/commitsage/internal/ports"
	"github.com/thomas-vilte/commitsage/internal/providers"
	"github.com/thomas-vilte/commitsage/internal/services"
)

type SummaryServiceFactoryInterface interface {
	CreateSummaryService(ctx context.Context) (ports.SummaryService, error)
}

// SummaryServiceFactory defers building the clients until a command runs, so a
// missing credential only fails the commands that need it.
type SummaryServiceFactory struct {
	config *config.Config
}

func NewSummaryServiceFactory(cfg *config.Config) *SummaryServiceFactory {
	return &SummaryServiceFactory{config: cfg}
}

func (f *SummaryServiceFactory) CreateSummaryService(ctx context.Context) (ports.SummaryService, error) {
	repo, err := providers.NewCommitRepository(f.config)
	if err != nil {
		return nil, err
	}

	completer, err := providers.NewCompleter(ctx, f.config)
	if err != nil {
		return nil, err
	}

	return services.NewSummaryService(
		services.WithCommitRepository(repo),
		services.WithCompleter(completer),
		services.WithLanguage(f.config.Language),
	), nil
}
