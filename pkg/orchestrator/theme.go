package orchestrator

import (
	"fmt"
	"html"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
)

// ThemeSelector aliases the go-theme selector contract.
type ThemeSelector = theme.ThemeSelector

// Asset keys the orchestrator looks up on the resolved theme.
const (
	ThemeAssetStylesheet = "stylesheet"
)

// WithThemeSelector passes a go-theme selector so theme and variant choices
// are resolved ahead of rendering.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider resolves themes from provider through a go-theme
// Selector. Unknown theme names fall back to defaultTheme.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithThemes registers manifests in an in-memory go-theme registry. An empty
// defaultTheme selects the first manifest. Invalid manifests surface as a
// configuration error from Generate.
func WithThemes(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) Option {
	return func(o *Orchestrator) {
		registry, first, err := NewThemeRegistry(manifests...)
		if err != nil {
			o.initialiseErr = err
			return
		}
		if defaultTheme == "" {
			defaultTheme = first
		}
		WithThemeProvider(registry, defaultTheme, defaultVariant)(o)
	}
}

// WithDefaultTheme sets the theme and variant used when a request names none.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// NewThemeRegistry validates and registers manifests, returning the registry
// and the name of the first manifest.
func NewThemeRegistry(manifests ...*theme.Manifest) (*theme.MemoryRegistry, string, error) {
	registry := theme.NewRegistry()
	first := ""
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, "", fmt.Errorf("orchestrator: register theme %q: %w", manifest.Name, err)
		}
		if first == "" {
			first = manifest.Name
		}
	}
	return registry, first, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*render.ThemeConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	name := req.ThemeName
	if name == "" {
		name = o.defaultTheme
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = o.defaultVariant
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	if manifest := selection.Manifest; manifest != nil {
		selection.Theme = manifest.Name
		if selection.Variant != "" {
			if _, ok := manifest.Variants[selection.Variant]; !ok {
				return nil, fmt.Errorf("orchestrator: theme %q has no variant %q", manifest.Name, selection.Variant)
			}
		}
	}
	cfg := selection.RendererTheme(nil)
	return &cfg, nil
}

// applyTheme exposes the resolved theme on the page: css variables, the
// theme stylesheet and data attributes on the root element.
func applyTheme(p *page.Page, cfg *render.ThemeConfig) {
	if p == nil || cfg == nil {
		return
	}
	root := p.Find("html").First()
	if cfg.Theme != "" {
		root.SetAttr("data-theme", cfg.Theme)
	}
	if cfg.Variant != "" {
		root.SetAttr("data-theme-variant", cfg.Variant)
	}
	if style := cssVarsStyle(cfg.CSSVars); style != "" {
		p.AppendHead(`<style data-sitegen-theme>:root{` + style + `}</style>`)
	}
	if cfg.AssetURL != nil {
		if href := cfg.AssetURL(ThemeAssetStylesheet); href != "" {
			p.AppendHead(fmt.Sprintf(`<link rel="stylesheet" href="%s" data-sitegen-theme>`, html.EscapeString(href)))
		}
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		value := strings.NewReplacer("<", "", ">", "", ";", "", "}", "").Replace(vars[key])
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(value)
		b.WriteString(";")
	}
	return b.String()
}
