package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitegen/internal/config"
	"github.com/goliatone/go-sitegen/pkg/submit"
)

var submitChoices = []string{"none", string(submit.KindLocal), string(submit.KindRelay), string(submit.KindSheets)}

func initCmd(flags *globalFlags, prompts PromptDriver) *cobra.Command {
	var (
		path  string
		yes   bool
		force bool
	)

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a sitegen configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = flags.configPath
			}
			if path == "" {
				path = config.FileNames[0]
			}
			st := newStyles()
			out := cmd.OutOrStdout()

			if _, err := os.Stat(path); err == nil && !force {
				if yes {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
				overwrite, err := prompts.Confirm(cmd.Context(), ConfirmConfig{Message: fmt.Sprintf("%s exists. Overwrite?", path)})
				if err != nil {
					return err
				}
				if !overwrite {
					st.warn(out, "kept existing %s", path)
					return nil
				}
			}

			cfg := config.Default()
			if !yes {
				if err := askConfig(cmd.Context(), prompts, &cfg); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			st.ok(out, "wrote %s", path)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", "", "config file to write (default: --config or sitegen.yaml)")
	c.Flags().BoolVarP(&yes, "yes", "y", false, "accept defaults without prompting")
	c.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return c
}

func askConfig(ctx context.Context, prompts PromptDriver, cfg *config.Config) error {
	var err error
	if cfg.Data.Base, err = prompts.Input(ctx, InputConfig{
		Message:   "Section data directory or base URL",
		Default:   cfg.Data.Base,
		Validator: required,
	}); err != nil {
		return err
	}
	if cfg.Template, err = prompts.Input(ctx, InputConfig{
		Message:   "Page template",
		Default:   cfg.Template,
		Validator: required,
	}); err != nil {
		return err
	}
	if cfg.Output, err = prompts.Input(ctx, InputConfig{
		Message: "Build output file",
		Default: cfg.Output,
	}); err != nil {
		return err
	}

	choice, err := prompts.Select(ctx, SelectConfig{
		Message: "Contact form endpoint",
		Options: submitChoices,
		Help:    "local stores submissions in SQLite; relay and sheets forward them to a URL",
	})
	if err != nil {
		return err
	}
	if choice > 0 && choice < len(submitChoices) {
		cfg.Submit.Kind = submitChoices[choice]
	}
	switch submit.Kind(cfg.Submit.Kind) {
	case submit.KindRelay, submit.KindSheets:
		if cfg.Submit.URL, err = prompts.Input(ctx, InputConfig{
			Message:   "Endpoint URL",
			Validator: required,
		}); err != nil {
			return err
		}
	case submit.KindLocal:
		if cfg.Submit.Database, err = prompts.Input(ctx, InputConfig{
			Message: "Submissions database",
			Default: cfg.Submit.Database,
		}); err != nil {
			return err
		}
	}

	themeName, err := prompts.Input(ctx, InputConfig{
		Message: "Theme name (empty for none)",
		Default: cfg.Theme.Name,
	})
	if err != nil {
		return err
	}
	cfg.Theme.Name = strings.TrimSpace(themeName)
	return nil
}

func required(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("value is required")
	}
	return nil
}
