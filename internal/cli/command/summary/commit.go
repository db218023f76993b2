package summary

import (
	"context"
	"strings"

	"github.com/thomas-vilte/commitsage/internal/cli/completion_helper"
	"github.com/thomas-vilte/commitsage/internal/config"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
	"github.com/thomas-vilte/commitsage/internal/factory"
	"github.com/thomas-vilte/commitsage/internal/i18n"
	"github.com/thomas-vilte/commitsage/internal/ui"
	"github.com/urfave/cli/v3"
)

type CommitCommand struct {
	serviceFactory factory.SummaryServiceFactoryInterface
}

func NewCommitCommand(serviceFactory factory.SummaryServiceFactoryInterface) *CommitCommand {
	return &CommitCommand{serviceFactory: serviceFactory}
}

func (c *CommitCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "commit",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("commit_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "sha",
				Aliases: []string{"s"},
				Usage:   t.GetMessage("commit_sha_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "review",
				Aliases: []string{"r"},
				Usage:   t.GetMessage("commit_review_usage", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sha := strings.TrimSpace(cmd.String("sha"))
			if sha == "" {
				sha = strings.TrimSpace(cfg.Repo.CommitSHA)
			}
			if sha == "" {
				return domainErrors.ErrCommitSHAMissing
			}

			svc, err := c.serviceFactory.CreateSummaryService(ctx)
			if err != nil {
				return wrapErr(t, "error_service_creation", nil, err)
			}

			data := map[string]interface{}{"SHA": sha}
			if cmd.Bool("review") {
				review, err := generate(t, func() (string, error) { return svc.ReviewCommit(ctx, sha) })
				if err != nil {
					return wrapErr(t, "error_commit_review", data, err)
				}
				ui.PrintHeading(writer(cmd), t.GetMessage("commit_review_heading", 0, data))
				ui.PrintBody(writer(cmd), review)
				return nil
			}

			summary, err := generate(t, func() (string, error) { return svc.SummarizeCommit(ctx, sha) })
			if err != nil {
				return wrapErr(t, "error_commit_summary", data, err)
			}
			ui.PrintHeading(writer(cmd), t.GetMessage("commit_summary_heading", 0, data))
			ui.PrintBody(writer(cmd), summary)
			return nil
		},
	}
}
