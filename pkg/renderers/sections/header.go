package sections

import (
	"context"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/section"
)

type headerRenderer struct {
	set *Set
}

func (headerRenderer) Section() section.Name { return section.Header }

// Render replaces the logo and navigation placeholders. Either is left
// untouched when the document omits it.
func (r headerRenderer) Render(_ context.Context, doc section.Document, _ render.RenderOptions) ([]page.Fragment, error) {
	var payload section.HeaderPayload
	if err := decode(doc, &payload); err != nil {
		return nil, err
	}

	var fragments []page.Fragment

	if logo := payload.Logo; logo != nil {
		data := map[string]any{
			"link": orDefault(logo.Link, DefaultLogoLink),
		}
		if logo.Type == "image" && logo.Src != "" {
			data["image"] = true
			data["src"] = logo.Src
			data["alt"] = orDefault(logo.Alt, DefaultLogoText)
		} else {
			data["image"] = false
			data["content"] = orDefault(logo.Content, DefaultLogoText)
		}
		html, err := r.set.render("logo", map[string]any{"logo": data})
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, page.Outer(section.PlaceholderLogo, html))
	}

	if payload.Navigation != nil {
		items := make([]map[string]any, 0, len(payload.Navigation))
		for _, item := range payload.Navigation {
			items = append(items, map[string]any{"label": item.Label, "link": item.Link})
		}
		html, err := r.set.render("nav", map[string]any{"items": items})
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, page.Outer(section.PlaceholderNav, html))
	}

	return fragments, nil
}
