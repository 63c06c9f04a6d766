package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitegen/pkg/orchestrator"
	"github.com/goliatone/go-sitegen/pkg/section"
)

func buildCmd(flags *globalFlags) *cobra.Command {
	var (
		output      string
		allowErrors bool
	)

	c := &cobra.Command{
		Use:   "build",
		Short: "Render the page and write it to the output file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFor(cmd, flags)
			if err != nil {
				return err
			}
			if output != "" {
				a.cfg.Output = output
			}

			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			result, err := a.generate(cmd.Context(), orch)
			if err != nil {
				return err
			}

			target := a.outputPath()
			if err := writeFile(target, result.HTML); err != nil {
				return err
			}

			a.reportResult(result)
			a.styles.field(a.stdout, "output", target)
			if !result.OK() && !allowErrors {
				return errReported
			}
			return nil
		},
	}

	c.Flags().StringVarP(&output, "output", "o", "", "output file (overrides config)")
	c.Flags().BoolVar(&allowErrors, "allow-errors", false, "exit 0 even when the page carries a diagnostic")
	return c
}

func checkCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load, validate and render every section without writing output",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFor(cmd, flags)
			if err != nil {
				return err
			}
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			result, err := a.generate(cmd.Context(), orch)
			if err != nil {
				return err
			}
			a.reportResult(result)
			if !result.OK() {
				return errReported
			}
			return nil
		},
	}
}

// reportResult prints one status line per section followed by the outcome.
func (a *app) reportResult(result orchestrator.Result) {
	rendered := make(map[section.Name]bool, len(result.Rendered))
	for _, name := range result.Rendered {
		rendered[name] = true
	}
	for _, name := range section.Order {
		switch {
		case rendered[name]:
			a.styles.ok(a.stdout, "%s", name)
		default:
			if _, loaded := result.Aggregate.Get(name); loaded {
				a.styles.warn(a.stdout, "%s %s", name, a.styles.Muted.Render("(not rendered)"))
			} else {
				a.styles.fail(a.stdout, "%s %s", name, a.styles.Muted.Render("(not loaded)"))
			}
		}
	}

	switch result.Outcome {
	case orchestrator.OutcomeRendered:
		a.styles.ok(a.stdout, "page %s", result.Outcome)
	default:
		a.styles.fail(a.stdout, "page %s: %v", result.Outcome, result.Err)
		if src := section.SourceOf(result.Err); src != "" {
			a.styles.field(a.stdout, "source", src)
		}
	}
}

func dirOf(path string) string {
	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) == "" {
		return "."
	}
	return dir
}
