// Package wiring attaches interaction hooks to a fully rendered page: the
// mobile menu toggle and the contact form submission. It only runs after
// every section renderer succeeded.
package wiring

import (
	"embed"
	"fmt"
	"html"
	"io/fs"
	"strings"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/section"
)

//go:embed assets/*.js assets/*.css
var embeddedAssets embed.FS

// Runtime asset file names inside AssetsFS.
const (
	RuntimeScript = "sitegen-runtime.js"
	RuntimeStyles = "sitegen.css"
)

// Attribute names read by the runtime script.
const (
	AttrMenu     = "data-sitegen-menu"
	AttrSubmit   = "data-sitegen-submit"
	AttrEndpoint = "data-sitegen-endpoint"
	AttrRuntime  = "data-sitegen-runtime"
)

// AssetsFS exposes the embedded runtime script and stylesheet.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// Option customises Wire.
type Option func(*config)

type config struct {
	form      render.FormTarget
	scriptURL string
	styleURL  string
}

// WithFormTarget points the contact form at a submission endpoint.
func WithFormTarget(target render.FormTarget) Option {
	return func(c *config) {
		c.form = target
	}
}

// WithScriptURL references the runtime script by URL instead of inlining it.
func WithScriptURL(url string) Option {
	return func(c *config) {
		c.scriptURL = strings.TrimSpace(url)
	}
}

// WithStylesheetURL links the runtime stylesheet from the page head.
func WithStylesheetURL(url string) Option {
	return func(c *config) {
		c.styleURL = strings.TrimSpace(url)
	}
}

// Result records which hooks were attached.
type Result struct {
	Menu    bool
	Form    bool
	Runtime bool
}

// Wire marks the menu and contact form for the runtime script and injects the
// script once. Missing menu or form elements are skipped, matching a page
// template that simply does not carry them.
func Wire(p *page.Page, options ...Option) (Result, error) {
	var result Result
	if p == nil {
		return result, fmt.Errorf("wiring: page is nil")
	}
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	toggle := p.Find(section.SelectorMenuToggle).First()
	nav := p.Find(section.SelectorHeaderNav).First()
	if toggle.Length() > 0 && nav.Length() > 0 {
		toggle.SetAttr(AttrMenu, "toggle")
		nav.SetAttr(AttrMenu, "nav")
		result.Menu = true
	}

	form := p.Find(section.SelectorContactForm).First()
	if form.Length() > 0 && cfg.form.Configured() {
		method := cfg.form.Method
		if method == "" {
			method = "post"
		}
		form.SetAttr("action", cfg.form.Action)
		form.SetAttr("method", strings.ToLower(method))
		form.SetAttr(AttrSubmit, "true")
		if cfg.form.Kind != "" {
			form.SetAttr(AttrEndpoint, cfg.form.Kind)
		}
		result.Form = true
	}

	if !result.Menu && !result.Form {
		return result, nil
	}
	if err := injectRuntime(p, cfg); err != nil {
		return result, err
	}
	result.Runtime = true
	return result, nil
}

func injectRuntime(p *page.Page, cfg config) error {
	if cfg.styleURL != "" && p.Find(`link[`+AttrRuntime+`]`).Length() == 0 {
		p.AppendHead(fmt.Sprintf(`<link rel="stylesheet" href="%s" %s>`, html.EscapeString(cfg.styleURL), AttrRuntime))
	}
	if p.Find(`script[`+AttrRuntime+`]`).Length() > 0 {
		return nil
	}
	if cfg.scriptURL != "" {
		p.AppendBody(fmt.Sprintf(`<script src="%s" defer %s></script>`, html.EscapeString(cfg.scriptURL), AttrRuntime))
		return nil
	}
	script, err := fs.ReadFile(embeddedAssets, "assets/"+RuntimeScript)
	if err != nil {
		return fmt.Errorf("wiring: read runtime script: %w", err)
	}
	p.AppendBody(fmt.Sprintf("<script %s>\n%s</script>", AttrRuntime, script))
	return nil
}
