package main

import (
	"context"
	"fmt"
	"os"

	"github.com/thomas-vilte/commitsage/internal/cli/command/completion"
	"github.com/thomas-vilte/commitsage/internal/cli/command/summary"
	"github.com/thomas-vilte/commitsage/internal/cli/registry"
	cfg "github.com/thomas-vilte/commitsage/internal/config"
	"github.com/thomas-vilte/commitsage/internal/factory"
	"github.com/thomas-vilte/commitsage/internal/git"
	"github.com/thomas-vilte/commitsage/internal/i18n"
	"github.com/thomas-vilte/commitsage/internal/logger"
	"github.com/thomas-vilte/commitsage/internal/providers"
	"github.com/thomas-vilte/commitsage/internal/ui"
	"github.com/thomas-vilte/commitsage/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, translations, err := initializeApp()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error starting commitsage: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	lang := cfg.LangEN
	if env := os.Getenv("LANGUAGE"); env != "" {
		lang = cfg.GetLocaleConfig(env)
	}

	translations, err := i18n.NewTranslations(lang)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	// Filled in once the flags are parsed; commands and the factory share it.
	cfgApp := &cfg.Config{}
	gitService := git.NewGitService("")
	serviceFactory := factory.NewSummaryServiceFactory(cfgApp)

	registerCommand := registry.NewRegistry(cfgApp, translations)
	if err := registerCommand.Register("commit", summary.NewCommitCommand(serviceFactory)); err != nil {
		return nil, nil, err
	}
	if err := registerCommand.Register("range", summary.NewRangeCommand(serviceFactory)); err != nil {
		return nil, nil, err
	}
	if err := registerCommand.Register("digest", summary.NewDigestCommand(serviceFactory)); err != nil {
		return nil, nil, err
	}

	commands := registerCommand.CreateCommands()
	for _, command := range commands {
		command.Action = withSetup(command.Action, cfgApp, translations, gitService)
	}
	commands = append(commands, completion.NewCompletionCommand(translations))

	return &cli.Command{
		Name:        "commitsage",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Description: appDescription(translations),
		Version:     version.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("debug_flag_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("verbose_flag_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: translations.GetMessage("env_file_flag_usage", 0, nil),
			},
		},
		Commands:              commands,
		EnableShellCompletion: true,
	}, translations, nil
}

// appDescription appends the supported environment variables to the help text.
func appDescription(translations *i18n.Translations) string {
	description := translations.GetMessage("app_description", 0, nil)
	if usage := cfg.Usage(); usage != "" {
		description += "\n\n" + usage
	}
	return description
}

// withSetup configures logging and loads the configuration before a command
// runs. The repository falls back to the origin remote of the working directory.
func withSetup(action cli.ActionFunc, cfgApp *cfg.Config, translations *i18n.Translations, remote providers.RepoInfoReader) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))

		loaded, err := cfg.LoadConfig(cmd.String("env-file"))
		if err != nil {
			return err
		}
		*cfgApp = *loaded

		if err := translations.SetLanguage(cfgApp.Language); err != nil {
			logger.Warn(ctx, "keeping default language", "language", cfgApp.Language, "error", err)
		}

		ctx = logger.With(ctx, "command", cmd.Name)
		providers.ResolveRepository(ctx, cfgApp, remote)
		logger.Debug(ctx, "configuration loaded",
			"provider", cfgApp.AI.Provider,
			"model", cfgApp.AI.Model,
			"repository", cfgApp.Repo.Owner+"/"+cfgApp.Repo.Name)

		return action(ctx, cmd)
	}
}
