// Package report surfaces pipeline failures to the end user. Load failures
// replace the whole page body; render failures append a banner below what was
// already rendered. The two are never conflated.
package report

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-sitegen/pkg/page"
	rendertemplate "github.com/goliatone/go-sitegen/pkg/render/template"
	gotemplate "github.com/goliatone/go-sitegen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-sitegen/pkg/section"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// MessageMissingData is shown when sections are absent after loading.
const MessageMissingData = "Một hoặc nhiều phần dữ liệu thiết yếu bị thiếu"

// Option configures a Reporter.
type Option func(*Reporter)

// WithDirectoryLabel sets the data directory name shown in the fatal
// diagnostic. Defaults to "data/".
func WithDirectoryLabel(label string) Option {
	return func(r *Reporter) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			r.directory = trimmed
		}
	}
}

// WithTemplateRenderer swaps the template engine used for diagnostics.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(r *Reporter) {
		if renderer != nil {
			r.templates = renderer
		}
	}
}

// Reporter renders diagnostics into a page.
type Reporter struct {
	templates rendertemplate.TemplateRenderer
	directory string
}

// New constructs a Reporter backed by the embedded diagnostic templates.
func New(options ...Option) (*Reporter, error) {
	r := &Reporter{directory: "data/"}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.templates == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("report: templates: %w", err)
		}
		engine, err := gotemplate.New(gotemplate.WithFS(sub), gotemplate.WithSetName("report"))
		if err != nil {
			return nil, fmt.Errorf("report: configure template renderer: %w", err)
		}
		r.templates = engine
	}
	return r, nil
}

// Fatal replaces the page body with a full-screen diagnostic naming the
// failing source and the raw error text.
func (r *Reporter) Fatal(p *page.Page, cause error) error {
	if p == nil {
		return errors.New("report: page is nil")
	}
	markup, err := r.templates.RenderTemplate("fatal", map[string]any{
		"directory": r.directory,
		"source":    section.SourceOf(cause),
		"message":   errorText(cause),
	})
	if err != nil {
		return fmt.Errorf("report: render fatal diagnostic: %w", err)
	}
	p.ReplaceBody(markup)
	return nil
}

// Banner appends a render diagnostic after the existing body content.
func (r *Reporter) Banner(p *page.Page, cause error) error {
	if p == nil {
		return errors.New("report: page is nil")
	}
	markup, err := r.templates.RenderTemplate("banner", map[string]any{
		"message": Message(cause),
	})
	if err != nil {
		return fmt.Errorf("report: render banner: %w", err)
	}
	p.AppendBody(markup)
	return nil
}

// Report dispatches cause to Fatal or Banner by error kind.
func (r *Reporter) Report(p *page.Page, cause error) error {
	if cause == nil {
		return nil
	}
	if section.IsLoadError(cause) {
		return r.Fatal(p, cause)
	}
	return r.Banner(p, cause)
}

// Message returns the user-facing text for a render-phase error.
func Message(cause error) string {
	var missing *section.MissingSectionsError
	if errors.As(cause, &missing) {
		names := make([]string, 0, len(missing.Missing))
		for _, name := range missing.Missing {
			names = append(names, string(name))
		}
		return fmt.Sprintf("%s (%s)", MessageMissingData, strings.Join(names, ", "))
	}
	return errorText(cause)
}

func errorText(cause error) string {
	if cause == nil {
		return ""
	}
	return cause.Error()
}
