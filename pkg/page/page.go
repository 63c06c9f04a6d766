package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page wraps a parsed HTML document.
type Page struct {
	doc *goquery.Document
}

// Parse reads an HTML template into a Page.
func Parse(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("page: parse template: %w", err)
	}
	return &Page{doc: doc}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(src string) (*Page, error) {
	return Parse(strings.NewReader(src))
}

// MustParseString panics when src cannot be parsed. Useful for tests.
func MustParseString(src string) *Page {
	p, err := ParseString(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Find runs a CSS selector against the document.
func (p *Page) Find(selector string) *goquery.Selection {
	return p.doc.Find(selector)
}

// Has reports whether an element with the given id exists.
func (p *Page) Has(id string) bool {
	return p.byID(id).Length() > 0
}

func (p *Page) byID(id string) *goquery.Selection {
	return p.doc.Find("#" + id).First()
}

// Apply lands a fragment on its target. It returns false without error when
// the target is not present in the page.
func (p *Page) Apply(f Fragment) (bool, error) {
	if strings.TrimSpace(f.Target) == "" {
		return false, errors.New("page: fragment target is required")
	}
	switch {
	case f.Target == targetTitle:
		p.SetTitle(f.HTML)
		return true, nil
	case strings.HasPrefix(f.Target, targetMetaPrefix):
		p.SetMeta(strings.TrimPrefix(f.Target, targetMetaPrefix), f.HTML)
		return true, nil
	}

	target := p.byID(f.Target)
	if target.Length() == 0 {
		return false, nil
	}

	if f.Mode != ModeOuter && len(f.Attrs) > 0 {
		names := make([]string, 0, len(f.Attrs))
		for name := range f.Attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			value := f.Attrs[name]
			if name == "style" {
				if current, ok := target.Attr("style"); ok {
					value = mergeStyle(current, value)
				}
			}
			target.SetAttr(name, value)
		}
	}

	switch f.Mode {
	case ModeInner:
		target.SetHtml(f.HTML)
	case ModeOuter:
		target.ReplaceWithHtml(f.HTML)
	case ModeAppend:
		target.AppendHtml(f.HTML)
	default:
		return false, fmt.Errorf("page: unsupported fragment mode %s", f.Mode)
	}
	return true, nil
}

// Title returns the document title text.
func (p *Page) Title() string {
	return strings.TrimSpace(p.doc.Find("head title").First().Text())
}

// SetTitle sets the document title, creating the element when missing.
func (p *Page) SetTitle(title string) {
	el := p.doc.Find("head title").First()
	if el.Length() == 0 {
		p.doc.Find("head").AppendHtml("<title></title>")
		el = p.doc.Find("head title").First()
	}
	el.SetText(title)
}

// SetMeta sets a <meta name=...> tag in the head, creating it when missing.
func (p *Page) SetMeta(name, content string) {
	sel := fmt.Sprintf(`head meta[name=%q]`, name)
	el := p.doc.Find(sel).First()
	if el.Length() == 0 {
		p.doc.Find("head").AppendHtml(fmt.Sprintf(`<meta name=%q>`, html.EscapeString(name)))
		el = p.doc.Find(sel).First()
	}
	el.SetAttr("content", content)
}

// AppendHead appends raw markup to the document head.
func (p *Page) AppendHead(markup string) {
	p.doc.Find("head").AppendHtml(markup)
}

// ReplaceBody swaps the entire body content for markup.
func (p *Page) ReplaceBody(markup string) {
	p.doc.Find("body").SetHtml(markup)
}

// AppendBody appends markup after the existing body content.
func (p *Page) AppendBody(markup string) {
	p.doc.Find("body").AppendHtml(markup)
}

// HTML serialises the full document, doctype included.
func (p *Page) HTML() (string, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render writes the full document to w.
func (p *Page) Render(w io.Writer) error {
	if len(p.doc.Nodes) == 0 {
		return errors.New("page: document is empty")
	}
	if err := html.Render(w, p.doc.Nodes[0]); err != nil {
		return fmt.Errorf("page: render: %w", err)
	}
	return nil
}
