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

type DigestCommand struct {
	serviceFactory factory.SummaryServiceFactoryInterface
}

func NewDigestCommand(serviceFactory factory.SummaryServiceFactoryInterface) *DigestCommand {
	return &DigestCommand{serviceFactory: serviceFactory}
}

func (c *DigestCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "digest",
		Aliases:       []string{"d"},
		Usage:         t.GetMessage("digest_usage", 0, nil),
		Flags:         rangeFlags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query, err := rangeQuery(t, cfg, cmd)
			if err != nil {
				return err
			}

			svc, err := c.serviceFactory.CreateSummaryService(ctx)
			if err != nil {
				return wrapErr(t, "error_service_creation", nil, err)
			}

			digest, err := generate(t, func() (models.RangeDigest, error) {
				return svc.DigestRange(ctx, query)
			})
			if err != nil {
				return wrapErr(t, "error_digest", nil, err)
			}

			w := writer(cmd)
			count := len(digest.Titles)
			ui.PrintHeading(w, t.GetMessage("digest_titles_heading", count, map[string]interface{}{"Count": count}))
			for _, title := range digest.Titles {
				ui.PrintBullet(w, title)
			}

			for _, s := range digest.Summaries {
				ui.PrintHeading(w, t.GetMessage("digest_kind_heading", 0, map[string]interface{}{
					"Kind": kindLabel(t, s.Kind),
				}))
				ui.PrintBody(w, s.Summary)
			}
			return nil
		},
	}
}
