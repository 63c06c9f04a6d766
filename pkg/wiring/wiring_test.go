package wiring_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/wiring"
)

const shell = `<html><head><title>t</title></head><body>
<header id="main-header">
  <nav><ul><li><a href="#about">Giới thiệu</a></li></ul></nav>
  <button class="mobile-menu-toggle"><i class="fas fa-bars"></i></button>
</header>
<section id="contact"><form action="#" method="post"><input name="name"></form></section>
</body></html>`

func TestWire_MenuAndRuntime(t *testing.T) {
	p := page.MustParseString(shell)

	result, err := wiring.Wire(p)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	if diff := cmp.Diff(wiring.Result{Menu: true, Runtime: true}, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if got, _ := p.Find(".mobile-menu-toggle").Attr(wiring.AttrMenu); got != "toggle" {
		t.Fatalf("toggle attr = %q", got)
	}
	if got, _ := p.Find("#main-header nav ul").Attr(wiring.AttrMenu); got != "nav" {
		t.Fatalf("nav attr = %q", got)
	}
	script := p.Find("script[data-sitegen-runtime]")
	if script.Length() != 1 || !strings.Contains(script.Text(), "wireMenu") {
		t.Fatalf("expected inline runtime script, got %d", script.Length())
	}
	if _, ok := p.Find("#contact form").Attr(wiring.AttrSubmit); ok {
		t.Fatalf("unconfigured form must not be intercepted")
	}
	if got, _ := p.Find("#contact form").Attr("action"); got != "#" {
		t.Fatalf("form action = %q", got)
	}
}

func TestWire_FormTarget(t *testing.T) {
	p := page.MustParseString(shell)

	result, err := wiring.Wire(p,
		wiring.WithFormTarget(render.FormTarget{Action: "/contact", Method: "POST", Kind: "relay"}),
		wiring.WithScriptURL("/assets/sitegen-runtime.js"),
		wiring.WithStylesheetURL("/assets/sitegen.css"),
	)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	if !result.Form {
		t.Fatalf("expected form wired")
	}
	form := p.Find("#contact form")
	got := map[string]string{}
	for _, name := range []string{"action", "method", wiring.AttrSubmit, wiring.AttrEndpoint} {
		got[name], _ = form.Attr(name)
	}
	want := map[string]string{
		"action":            "/contact",
		"method":            "post",
		wiring.AttrSubmit:   "true",
		wiring.AttrEndpoint: "relay",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form attrs mismatch (-want +got):\n%s", diff)
	}
	if src, _ := p.Find("script[data-sitegen-runtime]").Attr("src"); src != "/assets/sitegen-runtime.js" {
		t.Fatalf("script src = %q", src)
	}
	if href, _ := p.Find("head link[data-sitegen-runtime]").Attr("href"); href != "/assets/sitegen.css" {
		t.Fatalf("stylesheet href = %q", href)
	}
}

func TestWire_InjectsRuntimeOnce(t *testing.T) {
	p := page.MustParseString(shell)
	for i := 0; i < 2; i++ {
		if _, err := wiring.Wire(p); err != nil {
			t.Fatalf("wire: %v", err)
		}
	}
	if n := p.Find("script[data-sitegen-runtime]").Length(); n != 1 {
		t.Fatalf("expected one runtime script, got %d", n)
	}
}

func TestWire_PageWithoutHooks(t *testing.T) {
	p := page.MustParseString(`<html><head></head><body><p>tĩnh</p></body></html>`)
	result, err := wiring.Wire(p)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	if result.Runtime {
		t.Fatalf("runtime must not be injected without hooks")
	}
}

func TestWire_MenuToggleRoundTrip(t *testing.T) {
	p := page.MustParseString(shell)
	if _, err := wiring.Wire(p); err != nil {
		t.Fatalf("wire: %v", err)
	}
	navBefore, _ := p.Find("#main-header nav ul").Attr("class")
	iconBefore, _ := p.Find(".mobile-menu-toggle i").Attr("class")

	for i := 0; i < 2; i++ {
		if _, err := p.ToggleMenu(); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	navAfter, _ := p.Find("#main-header nav ul").Attr("class")
	iconAfter, _ := p.Find(".mobile-menu-toggle i").Attr("class")
	if navBefore != navAfter || iconBefore != iconAfter {
		t.Fatalf("toggle twice changed classes: nav %q→%q icon %q→%q", navBefore, navAfter, iconBefore, iconAfter)
	}
}

func TestAssetsFS(t *testing.T) {
	for _, name := range []string{wiring.RuntimeScript, wiring.RuntimeStyles} {
		if _, err := fs.ReadFile(wiring.AssetsFS(), name); err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
	}
}
