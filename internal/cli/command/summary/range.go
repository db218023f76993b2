package summary

import (
	"context"

	"github.com/thomas-vilte/commitsage/internal/cli/completion_helper"
	"github.com/thomas-vilte/commitsage/internal/config"
	"github.com/thomas-vilte/commitsage/internal/factory"
	"github.com/thomas-vilte/commitsage/internal/i18n"
	"github.com/thomas-vilte/commitsage/internal/models"
	"github.com/thomas-vilte/commitsage/internal/ui"
	"github.com/urfave/cli/v3"
)

type RangeCommand struct {
	serviceFactory factory.SummaryServiceFactoryInterface
}

func NewRangeCommand(serviceFactory factory.SummaryServiceFactoryInterface) *RangeCommand {
	return &RangeCommand{serviceFactory: serviceFactory}
}

func (c *RangeCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	flags := append(rangeFlags(t), &cli.StringFlag{
		Name:  "source",
		Usage: t.GetMessage("range_source_usage", 0, nil),
		Value: string(models.SourceMessages),
	})

	return &cli.Command{
		Name:          "range",
		Aliases:       []string{"r"},
		Usage:         t.GetMessage("range_usage", 0, nil),
		Flags:         flags,
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			source, err := models.ParseRangeSource(cmd.String("source"))
			if err != nil {
				return wrapErr(t, "error_invalid_source", map[string]interface{}{"Source": cmd.String("source")}, err)
			}
			query, err := rangeQuery(t, cfg, cmd)
			if err != nil {
				return err
			}

			svc, err := c.serviceFactory.CreateSummaryService(ctx)
			if err != nil {
				return wrapErr(t, "error_service_creation", nil, err)
			}

			summary, err := generate(t, func() (string, error) {
				return svc.SummarizeRange(ctx, query, source)
			})
			if err != nil {
				return wrapErr(t, "error_range_summary", nil, err)
			}

			ui.PrintHeading(writer(cmd), t.GetMessage("range_summary_heading", 0, map[string]interface{}{
				"Owner": cfg.Repo.Owner,
				"Repo":  cfg.Repo.Name,
			}))
			ui.PrintBody(writer(cmd), summary)
			return nil
		},
	}
}
