// Package cli implements the sitegen command line: build, check, serve,
// init and submissions.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errReported marks failures whose details were already printed.
var errReported = errors.New("cli: failure reported")

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := NewRootCmd(surveyDriver{})
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			newStyles().fail(os.Stderr, "%v", err)
		}
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. prompts backs the init command.
func NewRootCmd(prompts PromptDriver) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "sitegen",
		Short:         "Render a landing page from JSON section documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default: sitegen.yaml, sitegen.yml or sitegen.toml)")
	pf.StringVar(&flags.data, "data", "", "section data directory or base URL")
	pf.StringVar(&flags.template, "template", "", "page template path")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(
		buildCmd(flags),
		checkCmd(flags),
		serveCmd(flags),
		initCmd(flags, prompts),
		submissionsCmd(flags),
	)
	return cmd
}

func appFor(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	return newApp(flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(dirOf(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
