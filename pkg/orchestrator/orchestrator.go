package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	internalLoader "github.com/goliatone/go-sitegen/internal/section/loader"
	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/renderers/sections"
	"github.com/goliatone/go-sitegen/pkg/report"
	"github.com/goliatone/go-sitegen/pkg/section"
	"github.com/goliatone/go-sitegen/pkg/wiring"
)

const tracerName = "github.com/goliatone/go-sitegen/pkg/orchestrator"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom section loader.
func WithLoader(loader section.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a section renderer registry. It must hold a renderer
// for every section.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithLocator sets the default section locator used when a request does not
// carry its own.
func WithLocator(locator section.Locator) Option {
	return func(o *Orchestrator) {
		o.locator = locator
	}
}

// WithDataFS loads sections from fsys under root instead of the host
// filesystem.
func WithDataFS(fsys fs.FS, root string) Option {
	return func(o *Orchestrator) {
		o.dataFS = fsys
		o.locator = section.FSLocator(root)
	}
}

// WithReporter injects the error reporter used for diagnostics.
func WithReporter(reporter *report.Reporter) Option {
	return func(o *Orchestrator) {
		o.reporter = reporter
	}
}

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracer sets the tracer used for load and render spans. Defaults to the
// global otel provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *Orchestrator) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithFormTarget sets the default contact form destination.
func WithFormTarget(target render.FormTarget) Option {
	return func(o *Orchestrator) {
		o.form = target
	}
}

// WithWiringOptions forwards options to the interaction wiring step.
func WithWiringOptions(options ...wiring.Option) Option {
	return func(o *Orchestrator) {
		o.wiringOptions = append(o.wiringOptions, options...)
	}
}

// Orchestrator coordinates the full pipeline from section documents to a
// rendered page. It applies sensible defaults (filesystem/HTTP loader, built-in
// section renderers, embedded diagnostics) while remaining open to dependency
// injection for advanced callers.
type Orchestrator struct {
	loader          section.Loader
	registry        *render.Registry
	locator         section.Locator
	dataFS          fs.FS
	reporter        *report.Reporter
	logger          *slog.Logger
	tracer          trace.Tracer
	form            render.FormTarget
	wiringOptions   []wiring.Option
	themeSelector   ThemeSelector
	defaultTheme    string
	defaultVariant  string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one page generation.
type Request struct {
	// Template is the page shell markup holding the placeholders. Ignored when
	// Page is set.
	Template string

	// Page allows callers to pass an already parsed page. It is mutated in
	// place.
	Page *page.Page

	// Locator resolves section sources for this request. Falls back to the
	// orchestrator default.
	Locator section.Locator

	// Aggregate bypasses the loader when callers already hold the documents.
	// Validation still runs.
	Aggregate section.Aggregate

	// ThemeName and ThemeVariant select a theme when a selector is configured.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request renderer options. A zero Form falls
	// back to the orchestrator default.
	RenderOptions render.RenderOptions
}

// Generate runs load → validate → render → wire. Load and render failures are
// written onto the page and reported through Result; the returned error is
// reserved for misconfiguration.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}
	if err := o.checkRegistry(); err != nil {
		return Result{}, err
	}

	p, err := o.resolvePage(req)
	if err != nil {
		return Result{}, err
	}

	opts := req.RenderOptions
	if !opts.Form.Configured() {
		opts.Form = o.form
	}
	if opts.Theme == nil {
		themeCfg, err := o.resolveTheme(req)
		if err != nil {
			return Result{}, err
		}
		opts.Theme = themeCfg
	}
	applyTheme(p, opts.Theme)

	result := Result{Page: p, Outcome: OutcomeRendered}

	aggregate := req.Aggregate
	if aggregate == nil {
		locator := req.Locator
		if locator == nil {
			locator = o.locator
		}
		if locator == nil {
			return Result{}, errors.New("orchestrator: locator or aggregate is required")
		}
		aggregate, err = o.loadAll(ctx, locator)
		result.Aggregate = aggregate
		if err != nil {
			o.logger.Error("section load failed", "error", err, "source", section.SourceOf(err))
			result.Outcome = OutcomeLoadFailed
			result.Err = err
			if reportErr := o.reporter.Fatal(p, err); reportErr != nil {
				return Result{}, fmt.Errorf("orchestrator: %w", reportErr)
			}
			return o.finish(result)
		}
	}
	result.Aggregate = aggregate

	if err := aggregate.Validate(); err != nil {
		o.logger.Error("section data incomplete", "error", err)
		result.Outcome = OutcomeRenderFailed
		result.Err = err
		if reportErr := o.reporter.Banner(p, err); reportErr != nil {
			return Result{}, fmt.Errorf("orchestrator: %w", reportErr)
		}
		return o.finish(result)
	}

	rendered, err := o.renderAll(ctx, p, aggregate, opts)
	result.Rendered = rendered
	if err != nil {
		o.logger.Error("section render failed", "error", err)
		result.Outcome = OutcomeRenderFailed
		result.Err = err
		if reportErr := o.reporter.Banner(p, err); reportErr != nil {
			return Result{}, fmt.Errorf("orchestrator: %w", reportErr)
		}
		return o.finish(result)
	}

	wiringOptions := append([]wiring.Option{wiring.WithFormTarget(opts.Form)}, o.wiringOptions...)
	wired, err := wiring.Wire(p, wiringOptions...)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: wire interactions: %w", err)
	}
	result.Wiring = wired
	o.logger.Info("page rendered", "sections", len(rendered), "menu", wired.Menu, "form", wired.Form)

	return o.finish(result)
}

func (o *Orchestrator) finish(result Result) (Result, error) {
	html, err := result.Page.HTML()
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: serialise page: %w", err)
	}
	result.HTML = []byte(html)
	return result, nil
}

// loadAll fetches every section strictly in order, stopping at the first
// failure.
func (o *Orchestrator) loadAll(ctx context.Context, locator section.Locator) (section.Aggregate, error) {
	aggregate := make(section.Aggregate, len(section.Order))
	for _, name := range section.Order {
		doc, err := o.loadOne(ctx, locator, name)
		if err != nil {
			return aggregate, err
		}
		aggregate[name] = doc
	}
	return aggregate, nil
}

func (o *Orchestrator) loadOne(ctx context.Context, locator section.Locator, name section.Name) (section.Document, error) {
	src := locator(name)
	ctx, span := o.tracer.Start(ctx, "sitegen.load "+string(name), trace.WithAttributes(
		attribute.String("sitegen.section", string(name)),
		attribute.String("sitegen.source", locationOf(src)),
	))
	defer span.End()

	o.logger.Info("fetching section", "section", name, "source", locationOf(src))
	doc, err := o.loader.Load(ctx, name, src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if !section.IsLoadError(err) {
			err = &section.FetchError{Section: name, Source: locationOf(src), Err: err}
		}
		return section.Document{}, err
	}
	return doc, nil
}

// renderAll applies renderers in order and halts at the first failure,
// leaving earlier sections in place.
func (o *Orchestrator) renderAll(ctx context.Context, p *page.Page, aggregate section.Aggregate, opts render.RenderOptions) ([]section.Name, error) {
	rendered := make([]section.Name, 0, len(section.Order))
	for _, name := range section.Order {
		if err := o.renderOne(ctx, p, aggregate[name], opts); err != nil {
			return rendered, err
		}
		rendered = append(rendered, name)
	}
	return rendered, nil
}

func (o *Orchestrator) renderOne(ctx context.Context, p *page.Page, doc section.Document, opts render.RenderOptions) (err error) {
	name := doc.Name()
	ctx, span := o.tracer.Start(ctx, "sitegen.render "+string(name), trace.WithAttributes(
		attribute.String("sitegen.section", string(name)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := ctx.Err(); err != nil {
		return &section.RenderError{Section: name, Err: err}
	}

	renderer, err := o.registry.Get(name)
	if err != nil {
		return &section.RenderError{Section: name, Err: err}
	}
	fragments, err := renderer.Render(ctx, doc, opts)
	if err != nil {
		var renderErr *section.RenderError
		if errors.As(err, &renderErr) {
			return err
		}
		return &section.RenderError{Section: name, Err: err}
	}

	applied := 0
	for _, fragment := range fragments {
		ok, err := p.Apply(fragment)
		if err != nil {
			return &section.RenderError{Section: name, Err: err}
		}
		if !ok {
			o.logger.Debug("placeholder not found", "section", name, "target", fragment.Target)
			continue
		}
		applied++
	}
	span.SetAttributes(attribute.Int("sitegen.fragments", applied))
	o.logger.Info(sectionTitle(name)+" rendered.", "section", name, "fragments", applied)
	return nil
}

func (o *Orchestrator) resolvePage(req Request) (*page.Page, error) {
	if req.Page != nil {
		return req.Page, nil
	}
	if strings.TrimSpace(req.Template) == "" {
		return nil, errors.New("orchestrator: page template is required")
	}
	p, err := page.ParseString(req.Template)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse template: %w", err)
	}
	return p, nil
}

func (o *Orchestrator) checkRegistry() error {
	if o.registry == nil {
		return errors.New("orchestrator: renderer registry is nil")
	}
	var missing []string
	for _, name := range section.Order {
		if !o.registry.Has(name) {
			missing = append(missing, string(name))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("orchestrator: no renderer for sections: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	if o.loader == nil {
		o.loader = internalLoader.New(section.NewLoaderOptions(
			section.WithFileSystem(o.dataFS),
			section.WithHTTPFallback(section.DefaultRequestTimeout),
			section.WithLoaderLogger(o.logger),
		))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		set, err := sections.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
		} else if err := set.Register(o.registry); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
		}
	}
	if o.reporter == nil {
		reporter, err := report.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default reporter: %w", err)
		}
		o.reporter = reporter
	}
	o.defaultsApplied = true
}

func locationOf(src section.Source) string {
	if src == nil {
		return ""
	}
	return src.Location()
}

func sectionTitle(name section.Name) string {
	s := string(name)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
