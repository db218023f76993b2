package summary

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thomas-vilte/commitsage/internal/config"
	"github.com/thomas-vilte/commitsage/internal/i18n"
	"github.com/thomas-vilte/commitsage/internal/models"
	"github.com/thomas-vilte/commitsage/internal/ui"
	"github.com/urfave/cli/v3"
)

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func kindLabel(t *i18n.Translations, kind models.ChangeKind) string {
	return t.GetMessage("kind_"+strings.ReplaceAll(string(kind), "-", "_"), 0, nil)
}

func wrapErr(t *i18n.Translations, messageID string, data map[string]interface{}, err error) error {
	return fmt.Errorf("%s: %w", t.GetMessage(messageID, 0, data), err)
}

// generate runs a model-backed call behind the progress spinner.
func generate[T any](t *i18n.Translations, fn func() (T, error)) (T, error) {
	var result T
	err := ui.WithSpinner(t.GetMessage("spinner_generating", 0, nil), func() error {
		var err error
		result, err = fn()
		return err
	})
	return result, err
}

// rangeFlags are shared by the commands that work on a date range.
func rangeFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "since",
			Usage: t.GetMessage("since_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "until",
			Usage: t.GetMessage("until_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "author",
			Aliases: []string{"a"},
			Usage:   t.GetMessage("author_flag_usage", 0, nil),
		},
	}
}

func rangeQuery(t *i18n.Translations, cfg *config.Config, cmd *cli.Command) (models.CommitQuery, error) {
	query, err := cfg.CommitQuery(cmd.String("since"), cmd.String("until"), cmd.String("author"))
	if err != nil {
		return models.CommitQuery{}, wrapErr(t, "error_invalid_range", nil, err)
	}
	return query, nil
}
