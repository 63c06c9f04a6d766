package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-sitegen/internal/config"
	"github.com/goliatone/go-sitegen/internal/logger"
	internalLoader "github.com/goliatone/go-sitegen/internal/section/loader"
	"github.com/goliatone/go-sitegen/pkg/orchestrator"
	"github.com/goliatone/go-sitegen/pkg/report"
	"github.com/goliatone/go-sitegen/pkg/section"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	data       string
	template   string
	logLevel   string
	logFormat  string
}

// app is the resolved runtime for one command invocation.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	styles styles
	stdout io.Writer
	stderr io.Writer
}

func newApp(flags *globalFlags, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.data != "" {
		cfg.Data.Base = flags.data
	}
	if flags.template != "" {
		cfg.Template = flags.template
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: stderr})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: log, styles: newStyles(), stdout: stdout, stderr: stderr}, nil
}

// resolve anchors relative paths at the config file's directory.
func (a *app) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || isURL(p) || a.cfg.Path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(a.cfg.Path), p)
}

func (a *app) dataBase() string     { return a.resolve(a.cfg.Data.Base) }
func (a *app) templatePath() string { return a.resolve(a.cfg.Template) }
func (a *app) outputPath() string   { return a.resolve(a.cfg.Output) }

// dataDir returns the local data directory, empty when sections come from a
// remote base.
func (a *app) dataDir() string {
	base := a.dataBase()
	if isURL(base) {
		return ""
	}
	return base
}

// directoryLabel names the data location in the fatal diagnostic, as
// configured rather than resolved.
func (a *app) directoryLabel() string {
	base := strings.TrimSpace(a.cfg.Data.Base)
	if base == "" || isURL(base) || strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}

func (a *app) orchestrator(extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	locator, err := section.LocatorFor(a.dataBase())
	if err != nil {
		return nil, err
	}
	loader := internalLoader.New(section.NewLoaderOptions(
		section.WithHTTPFallback(a.cfg.Data.Timeout.Duration),
		section.WithLoaderLogger(a.logger),
	))

	reporter, err := report.New(report.WithDirectoryLabel(a.directoryLabel()))
	if err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(loader),
		orchestrator.WithReporter(reporter),
		orchestrator.WithLocator(locator),
		orchestrator.WithLogger(a.logger),
		orchestrator.WithFormTarget(a.cfg.FormTarget()),
	}
	if manifest := a.cfg.ThemeManifest(); manifest != nil {
		options = append(options, orchestrator.WithThemes(a.cfg.Theme.Name, a.cfg.Theme.Variant, manifest))
	}
	options = append(options, extra...)
	return orchestrator.New(options...), nil
}

// generate renders the page once. The returned error covers misconfiguration
// only; load and render failures live in the result.
func (a *app) generate(ctx context.Context, orch *orchestrator.Orchestrator) (orchestrator.Result, error) {
	tmpl, err := os.ReadFile(a.templatePath())
	if err != nil {
		return orchestrator.Result{}, fmt.Errorf("read template: %w", err)
	}
	return orch.Generate(ctx, orchestrator.Request{Template: string(tmpl)})
}

func isURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}
