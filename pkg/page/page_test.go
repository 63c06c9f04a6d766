package page_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sitegen/pkg/page"
)

const shell = `<!DOCTYPE html>
<html><head><title>old</title></head>
<body>
<header id="main-header">
  <div id="logo-placeholder"></div>
  <button class="mobile-menu-toggle"><i class="fas fa-bars"></i></button>
  <nav><ul><li><a href="#about">About</a></li></ul></nav>
</header>
<section id="hero"></section>
</body></html>`

func classes(t *testing.T, p *page.Page, selector string) string {
	t.Helper()
	value, _ := p.Find(selector).First().Attr("class")
	return value
}

func TestToggleMenuTwiceRestoresClasses(t *testing.T) {
	p := page.MustParseString(shell)
	navBefore := classes(t, p, "#main-header nav ul")
	iconBefore := classes(t, p, ".mobile-menu-toggle i")

	open, err := p.ToggleMenu()
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !open || !p.MenuOpen() {
		t.Fatalf("expected menu open after first toggle")
	}
	if got := classes(t, p, ".mobile-menu-toggle i"); got != "fas fa-times" {
		t.Fatalf("expected close icon, got %q", got)
	}

	open, err = p.ToggleMenu()
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if open {
		t.Fatalf("expected menu closed after second toggle")
	}
	if diff := cmp.Diff([]string{navBefore, iconBefore}, []string{
		classes(t, p, "#main-header nav ul"),
		classes(t, p, ".mobile-menu-toggle i"),
	}); diff != "" {
		t.Fatalf("classes not restored (-want +got):\n%s", diff)
	}
}

func TestCloseMenu(t *testing.T) {
	p := page.MustParseString(shell)
	if err := p.CloseMenu(); err != nil {
		t.Fatalf("close closed menu: %v", err)
	}
	if _, err := p.ToggleMenu(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := p.CloseMenu(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if p.MenuOpen() {
		t.Fatalf("expected menu closed")
	}
	if got := classes(t, p, ".mobile-menu-toggle i"); got != "fas fa-bars" {
		t.Fatalf("expected bars icon, got %q", got)
	}
}

func TestToggleMenuWithoutMarkup(t *testing.T) {
	p := page.MustParseString(`<html><body></body></html>`)
	if _, err := p.ToggleMenu(); err != page.ErrNoMenu {
		t.Fatalf("expected ErrNoMenu, got %v", err)
	}
}

func TestApplyFragments(t *testing.T) {
	p := page.MustParseString(shell)

	applied, err := p.Apply(page.Outer("logo-placeholder", `<div class="logo"><a href="#">Logo</a></div>`))
	if err != nil || !applied {
		t.Fatalf("apply outer: %v %v", applied, err)
	}
	if p.Has("logo-placeholder") {
		t.Fatalf("placeholder should be replaced")
	}

	hero := page.Inner("hero", `<h1>Chào</h1>`).WithAttr("style", `background-image: url("bg.jpg")`)
	if _, err := p.Apply(hero); err != nil {
		t.Fatalf("apply inner: %v", err)
	}
	style, _ := p.Find("#hero").Attr("style")
	if style != `background-image: url("bg.jpg")` {
		t.Fatalf("unexpected style %q", style)
	}

	applied, err = p.Apply(page.Inner("pricing-container", "<p>x</p>"))
	if err != nil || applied {
		t.Fatalf("missing target should be skipped, got %v %v", applied, err)
	}

	out, err := p.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", `<div class="logo">`, "<h1>Chào</h1>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTitleMetaAndBody(t *testing.T) {
	p := page.MustParseString(shell)
	p.SetTitle("Dịch Vụ Xe 7 Chỗ")
	p.SetMeta("description", "Thuê xe")
	if got := p.Title(); got != "Dịch Vụ Xe 7 Chỗ" {
		t.Fatalf("unexpected title %q", got)
	}
	if got, _ := p.Find(`meta[name="description"]`).Attr("content"); got != "Thuê xe" {
		t.Fatalf("unexpected meta %q", got)
	}

	p.AppendBody(`<p class="render-error">x</p>`)
	if p.Find("#hero").Length() != 1 || p.Find(".render-error").Length() != 1 {
		t.Fatalf("append should keep existing content")
	}

	p.ReplaceBody(`<div class="fatal"></div>`)
	if p.Find("#hero").Length() != 0 || p.Find(".fatal").Length() != 1 {
		t.Fatalf("replace should drop existing content")
	}
}

func TestToggleMenuKeepsClassOrderAndSpacing(t *testing.T) {
	p := page.MustParseString(`<html><body>
<header id="main-header">
  <button class="mobile-menu-toggle"><i class="fas fa-bars fa-lg"></i></button>
  <nav><ul class="nav-list"></ul></nav>
</header></body></html>`)

	steps := []struct {
		nav, icon string
	}{
		{"nav-list active", "fas fa-times fa-lg"},
		{"nav-list", "fas fa-bars fa-lg"},
		{"nav-list active", "fas fa-times fa-lg"},
	}
	for i, want := range steps {
		if _, err := p.ToggleMenu(); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		got := []string{classes(t, p, "#main-header nav ul"), classes(t, p, ".mobile-menu-toggle i")}
		if diff := cmp.Diff([]string{want.nav, want.icon}, got); diff != "" {
			t.Fatalf("toggle %d classes (-want +got):\n%s", i, diff)
		}
	}

	if err := p.CloseMenu(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if diff := cmp.Diff([]string{"nav-list", "fas fa-bars fa-lg"}, []string{
		classes(t, p, "#main-header nav ul"),
		classes(t, p, ".mobile-menu-toggle i"),
	}); diff != "" {
		t.Fatalf("close classes (-want +got):\n%s", diff)
	}
}

func TestToggleMenuTwiceLeavesNoEmptyClassAttribute(t *testing.T) {
	p := page.MustParseString(shell)
	for i := 0; i < 2; i++ {
		if _, err := p.ToggleMenu(); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	if _, ok := p.Find("#main-header nav ul").Attr("class"); ok {
		t.Fatalf("expected class attribute removed from nav list")
	}
}

func TestApplyMergesStyleAttribute(t *testing.T) {
	p := page.MustParseString(`<html><body><section id="hero" style="min-height:60vh; background-image: url(old.jpg)"></section></body></html>`)

	hero := page.Inner("hero", `<h1>Chào</h1>`).WithAttr("style", `background-image: url("bg.jpg")`)
	if _, err := p.Apply(hero); err != nil {
		t.Fatalf("apply: %v", err)
	}

	style, _ := p.Find("#hero").Attr("style")
	if diff := cmp.Diff(`min-height:60vh; background-image: url("bg.jpg")`, style); diff != "" {
		t.Fatalf("style mismatch (-want +got):\n%s", diff)
	}
}
