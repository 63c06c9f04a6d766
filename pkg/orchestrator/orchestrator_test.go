package orchestrator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/renderers/sections"
	"github.com/goliatone/go-sitegen/pkg/section"
	"github.com/goliatone/go-sitegen/pkg/testsupport"
)

func generate(t *testing.T, files fstest.MapFS, options ...Option) Result {
	t.Helper()
	orch := New(append([]Option{WithDataFS(files, testsupport.DataDir)}, options...)...)
	result, err := orch.Generate(context.Background(), Request{Template: testsupport.PageTemplate(t)})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return result
}

func parse(t *testing.T, result Result) *page.Page {
	t.Helper()
	p, err := page.ParseString(string(result.HTML))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return p
}

func TestGenerate_RendersEverySection(t *testing.T) {
	result := generate(t, testsupport.DataFS(t))

	if !result.OK() {
		t.Fatalf("expected clean render, got %s: %v", result.Outcome, result.Err)
	}
	if diff := cmp.Diff(section.Order, result.Rendered); diff != "" {
		t.Fatalf("rendered sections mismatch (-want +got):\n%s", diff)
	}

	p := parse(t, result)
	if got := p.Title(); got != "Xe 7 Chỗ Hà Nội - Đưa Đón Sân Bay" {
		t.Fatalf("title = %q", got)
	}
	for _, id := range []string{section.PlaceholderLogo, section.PlaceholderNav} {
		if p.Has(id) {
			t.Fatalf("placeholder %s should have been replaced", id)
		}
	}
	checks := map[string]int{
		"#main-header .logo a":                         1,
		"#main-header nav ul li":                       3,
		"#hero h1":                                     1,
		"#about .carousel-slide":                       2,
		"#pricing-container tbody tr":                  2,
		"#contact form":                                1,
		"#footer-container .footer-info p":             3,
		".render-error":                                0,
		".sitegen-fatal":                               0,
		"script[data-sitegen-runtime]":                 1,
		`[data-sitegen-menu="toggle"]`:                 1,
		`#main-header nav ul[data-sitegen-menu="nav"]`: 1,
	}
	for selector, want := range checks {
		if got := p.Find(selector).Length(); got != want {
			t.Errorf("%s: want %d, got %d", selector, want, got)
		}
	}
	if !result.Wiring.Menu || result.Wiring.Form {
		t.Fatalf("unexpected wiring result %+v", result.Wiring)
	}
}

func TestGenerate_FetchStatusReplacesBody(t *testing.T) {
	files := testsupport.DataFS(t)
	var (
		mu        sync.Mutex
		requested []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Path)
		mu.Unlock()
		if strings.HasSuffix(r.URL.Path, "pricing.json") {
			http.NotFound(w, r)
			return
		}
		file, ok := files[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(file.Data)
	}))
	defer server.Close()

	locator, err := section.URLLocator(server.URL + "/data/")
	if err != nil {
		t.Fatalf("locator: %v", err)
	}

	orch := New(WithLocator(locator))
	result, err := orch.Generate(context.Background(), Request{Template: testsupport.PageTemplate(t)})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if result.Outcome != OutcomeLoadFailed {
		t.Fatalf("expected load failure, got %s", result.Outcome)
	}
	var fetchErr *section.FetchError
	if !errors.As(result.Err, &fetchErr) || fetchErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 fetch error, got %v", result.Err)
	}
	if len(result.Rendered) != 0 {
		t.Fatalf("no renderer may run after a load failure, got %v", result.Rendered)
	}

	wantPaths := []string{"/data/site.json", "/data/header.json", "/data/hero.json", "/data/about.json", "/data/pricing.json"}
	if diff := cmp.Diff(wantPaths, requested); diff != "" {
		t.Fatalf("fetch sequence mismatch (-want +got):\n%s", diff)
	}

	p := parse(t, result)
	if p.Find("#hero").Length() != 0 || p.Find("#main-header").Length() != 0 {
		t.Fatalf("body should be replaced by the diagnostic")
	}
	if got := p.Title(); got != "Đang tải..." {
		t.Fatalf("site renderer must not run, title = %q", got)
	}
	detail := p.Find(".sitegen-fatal-detail").Text()
	if !strings.Contains(detail, "404") || !strings.Contains(detail, "pricing.json") {
		t.Fatalf("diagnostic should name path and status, got %q", detail)
	}
}

func TestGenerate_InvalidJSONReplacesBody(t *testing.T) {
	files := testsupport.DataFS(t)
	files["data/about.json"] = &fstest.MapFile{Data: []byte(`{"title": "Giới thiệu",`)}

	result := generate(t, files)

	if result.Outcome != OutcomeLoadFailed {
		t.Fatalf("expected load failure, got %s", result.Outcome)
	}
	var parseErr *section.ParseError
	if !errors.As(result.Err, &parseErr) || parseErr.Section != section.About {
		t.Fatalf("expected about parse error, got %v", result.Err)
	}
	detail := parse(t, result).Find(".sitegen-fatal-detail").Text()
	if !strings.Contains(detail, "data/about.json") {
		t.Fatalf("diagnostic should name the document, got %q", detail)
	}
}

func TestGenerate_NullSectionAppendsBanner(t *testing.T) {
	files := testsupport.DataFS(t)
	files["data/contact.json"] = &fstest.MapFile{Data: []byte("null")}

	result := generate(t, files)

	if result.Outcome != OutcomeRenderFailed {
		t.Fatalf("expected render failure, got %s", result.Outcome)
	}
	var missing *section.MissingSectionsError
	if !errors.As(result.Err, &missing) {
		t.Fatalf("expected missing sections error, got %v", result.Err)
	}
	if diff := cmp.Diff([]section.Name{section.Contact}, missing.Missing); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}

	p := parse(t, result)
	if p.Find(".sitegen-fatal").Length() != 0 {
		t.Fatalf("missing data must not replace the page")
	}
	if p.Find("#main-header").Length() != 1 {
		t.Fatalf("page template should be kept")
	}
	banner := p.Find(".render-error").Text()
	if !strings.Contains(banner, "Một hoặc nhiều phần dữ liệu thiết yếu bị thiếu") {
		t.Fatalf("unexpected banner %q", banner)
	}
}

// failingPricingRegistry returns the built-in renderers with pricing
// replaced by one that always fails with "boom".
func failingPricingRegistry(t *testing.T) *render.Registry {
	t.Helper()
	registry := render.NewRegistry()
	set, err := sections.New()
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if err := set.Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Replace(render.SectionRendererFunc{
		Name: section.Pricing,
		Fn: func(context.Context, section.Document, render.RenderOptions) ([]page.Fragment, error) {
			return nil, errors.New("boom")
		},
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	return registry
}

func TestGenerate_RendererFailureHaltsLaterSections(t *testing.T) {
	result := generate(t, testsupport.DataFS(t), WithRegistry(failingPricingRegistry(t)))

	if result.Outcome != OutcomeRenderFailed {
		t.Fatalf("expected render failure, got %s", result.Outcome)
	}
	wantRendered := []section.Name{section.Site, section.Header, section.Hero, section.About}
	if diff := cmp.Diff(wantRendered, result.Rendered); diff != "" {
		t.Fatalf("rendered mismatch (-want +got):\n%s", diff)
	}

	p := parse(t, result)
	if p.Find("#hero h1").Length() != 1 {
		t.Fatalf("earlier sections should stay rendered")
	}
	if p.Find("#contact form").Length() != 0 || p.Find("#footer-container p").Length() != 0 {
		t.Fatalf("later sections must not render")
	}
	if p.Find("script[data-sitegen-runtime]").Length() != 0 {
		t.Fatalf("wiring must not run after a render failure")
	}
	banner := p.Find(".render-error").Text()
	if !strings.Contains(banner, "render pricing: boom") {
		t.Fatalf("unexpected banner %q", banner)
	}
}

func TestGenerate_UsesPreloadedAggregate(t *testing.T) {
	orch := New()
	result, err := orch.Generate(context.Background(), Request{
		Template:  testsupport.PageTemplate(t),
		Aggregate: testsupport.Aggregate(t),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected clean render, got %v", result.Err)
	}
}

func TestGenerate_LoadsSequentiallyInOrder(t *testing.T) {
	loader := &recordingLoader{aggregate: testsupport.Aggregate(t)}
	orch := New(WithLoader(loader), WithLocator(section.FSLocator("data")))

	if _, err := orch.Generate(context.Background(), Request{Template: testsupport.PageTemplate(t)}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff(section.Order, loader.calls); diff != "" {
		t.Fatalf("load order mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_FormTarget(t *testing.T) {
	result := generate(t, testsupport.DataFS(t), WithFormTarget(render.FormTarget{Action: "/contact", Method: "post", Kind: "local"}))

	form := parse(t, result).Find("#contact form")
	if action, _ := form.Attr("action"); action != "/contact" {
		t.Fatalf("form action = %q", action)
	}
	if _, ok := form.Attr("data-sitegen-submit"); !ok {
		t.Fatalf("expected form to be intercepted by the runtime")
	}
	if !result.Wiring.Form {
		t.Fatalf("expected form wiring reported")
	}
}

func TestGenerate_AppliesTheme(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "coastal",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#0a7ea4"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/coastal",
			Files:  map[string]string{ThemeAssetStylesheet: "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#04364a"}},
		},
	}

	result := generate(t, testsupport.DataFS(t), WithThemes("coastal", "dark", manifest))

	p := parse(t, result)
	if got, _ := p.Find("html").Attr("data-theme"); got != "coastal" {
		t.Fatalf("data-theme = %q", got)
	}
	if style := p.Find("style[data-sitegen-theme]").Text(); !strings.Contains(style, "--brand:#04364a;") {
		t.Fatalf("expected variant css var, got %q", style)
	}
	if href, _ := p.Find("link[data-sitegen-theme]").Attr("href"); href != "/assets/themes/coastal/theme.css" {
		t.Fatalf("stylesheet href = %q", href)
	}
}

func coastalManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "coastal",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#0a7ea4"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/coastal",
			Files:  map[string]string{ThemeAssetStylesheet: "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#04364a"},
				Assets: theme.Assets{
					Prefix: "/assets/themes/coastal-dark",
					Files:  map[string]string{"logo": "logo.svg"},
				},
			},
		},
	}
}

func TestGenerate_VariantPrefixOnlyAppliesToVariantFiles(t *testing.T) {
	result := generate(t, testsupport.DataFS(t), WithThemes("coastal", "dark", coastalManifest()))

	href, _ := parse(t, result).Find("link[data-sitegen-theme]").Attr("href")
	if diff := cmp.Diff("/assets/themes/coastal/theme.css", href); diff != "" {
		t.Fatalf("stylesheet href mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_UnknownThemeFallsBackToDefault(t *testing.T) {
	result := generate(t, testsupport.DataFS(t), WithThemes("", "", coastalManifest()))

	if got, _ := parse(t, result).Find("html").Attr("data-theme"); got != "coastal" {
		t.Fatalf("data-theme = %q", got)
	}

	orch := New(WithDataFS(testsupport.DataFS(t), "data"), WithThemes("", "", coastalManifest()))
	fallback, err := orch.Generate(context.Background(), Request{Template: testsupport.PageTemplate(t), ThemeName: "missing"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got, _ := parse(t, fallback).Find("html").Attr("data-theme"); got != "coastal" {
		t.Fatalf("fallback data-theme = %q", got)
	}
}

func TestGenerate_UnknownThemeWithoutDefaultIsConfigError(t *testing.T) {
	registry := theme.NewRegistry()
	if err := registry.Register(coastalManifest()); err != nil {
		t.Fatalf("register manifest: %v", err)
	}

	orch := New(WithDataFS(testsupport.DataFS(t), "data"), WithThemeProvider(registry, "", ""))
	_, err := orch.Generate(context.Background(), Request{Template: testsupport.PageTemplate(t), ThemeName: "missing"})
	if !errors.Is(err, theme.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
}

func TestGenerate_UnknownVariantIsConfigError(t *testing.T) {
	orch := New(WithDataFS(testsupport.DataFS(t), "data"), WithThemes("coastal", "", coastalManifest()))
	_, err := orch.Generate(context.Background(), Request{Template: testsupport.PageTemplate(t), ThemeVariant: "sepia"})
	if err == nil || !strings.Contains(err.Error(), `has no variant "sepia"`) {
		t.Fatalf("expected variant error, got %v", err)
	}
}

func TestGenerate_InvalidManifestIsConfigError(t *testing.T) {
	orch := New(WithDataFS(testsupport.DataFS(t), "data"), WithThemes("", "", &theme.Manifest{Name: "broken"}))
	_, err := orch.Generate(context.Background(), Request{Template: testsupport.PageTemplate(t)})
	if err == nil || !strings.Contains(err.Error(), "version is required") {
		t.Fatalf("expected manifest validation error, got %v", err)
	}
}

func TestGenerate_ConfigurationErrors(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		//nolint:staticcheck // exercising the nil guard
		if _, err := New().Generate(nil, Request{Template: "<html></html>"}); err == nil {
			t.Fatalf("expected error for nil context")
		}
	})
	t.Run("missing template", func(t *testing.T) {
		if _, err := New(WithLocator(section.DirLocator("data"))).Generate(context.Background(), Request{}); err == nil {
			t.Fatalf("expected error for missing template")
		}
	})
	t.Run("missing locator", func(t *testing.T) {
		if _, err := New().Generate(context.Background(), Request{Template: testsupport.PageTemplate(t)}); err == nil {
			t.Fatalf("expected error for missing locator")
		}
	})
	t.Run("incomplete registry", func(t *testing.T) {
		registry := render.NewRegistry()
		_, err := New(WithRegistry(registry), WithLocator(section.DirLocator("data"))).
			Generate(context.Background(), Request{Template: testsupport.PageTemplate(t)})
		if err == nil || !strings.Contains(err.Error(), "no renderer for sections") {
			t.Fatalf("expected registry error, got %v", err)
		}
	})
}

type recordingLoader struct {
	aggregate section.Aggregate
	calls     []section.Name
}

func (l *recordingLoader) Load(_ context.Context, name section.Name, _ section.Source) (section.Document, error) {
	l.calls = append(l.calls, name)
	return l.aggregate[name], nil
}
