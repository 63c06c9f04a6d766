package sections

import (
	"context"
	"fmt"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/section"
)

type heroRenderer struct {
	set *Set
}

func (heroRenderer) Section() section.Name { return section.Hero }

func (r heroRenderer) Render(_ context.Context, doc section.Document, _ render.RenderOptions) ([]page.Fragment, error) {
	var payload section.HeroPayload
	if err := decode(doc, &payload); err != nil {
		return nil, err
	}

	data := map[string]any{
		"title":    orDefault(payload.Title, DefaultHeroTitle),
		"subtitle": payload.Subtitle,
	}
	if cta := payload.CTAButton; cta != nil {
		data["cta"] = map[string]any{
			"link": orDefault(cta.Link, DefaultCTALink),
			"text": orDefault(cta.Text, DefaultCTAText),
		}
	}

	html, err := r.set.render("hero", data)
	if err != nil {
		return nil, err
	}

	background := orDefault(payload.BackgroundImage, DefaultHeroBackground)
	fragment := page.Inner(section.PlaceholderHero, html).
		WithAttr("style", fmt.Sprintf("background-image: url(%q)", background))
	return []page.Fragment{fragment}, nil
}
