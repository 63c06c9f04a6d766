package sections

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-sitegen/pkg/render"
	rendertemplate "github.com/goliatone/go-sitegen/pkg/render/template"
	gotemplate "github.com/goliatone/go-sitegen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-sitegen/pkg/section"
)

// Option configures the section renderer set.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Set groups the seven built-in section renderers around one template engine.
type Set struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the renderer set applying any provided options.
func New(options ...Option) (*Set, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithSetName("sections"),
		)
		if err != nil {
			return nil, fmt.Errorf("sections: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Set{templates: renderer}, nil
}

// Renderers returns the renderers in render order.
func (s *Set) Renderers() []render.SectionRenderer {
	return []render.SectionRenderer{
		siteRenderer{},
		headerRenderer{set: s},
		heroRenderer{set: s},
		aboutRenderer{set: s},
		pricingRenderer{set: s},
		contactRenderer{set: s},
		footerRenderer{set: s},
	}
}

// Register adds every renderer in the set to registry.
func (s *Set) Register(registry *render.Registry) error {
	for _, renderer := range s.Renderers() {
		if err := registry.Register(renderer); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) render(name string, data map[string]any) (string, error) {
	if s == nil || s.templates == nil {
		return "", fmt.Errorf("sections: template renderer is nil")
	}
	out, err := s.templates.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("sections: render %s: %w", name, err)
	}
	return out, nil
}

func decode(doc section.Document, target any) error {
	if err := doc.Decode(target); err != nil {
		return fmt.Errorf("sections: decode %s: %w", doc.Name(), err)
	}
	return nil
}
