package sections

import (
	"context"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/section"
)

type siteRenderer struct{}

func (siteRenderer) Section() section.Name { return section.Site }

func (siteRenderer) Render(_ context.Context, doc section.Document, _ render.RenderOptions) ([]page.Fragment, error) {
	var payload section.SitePayload
	if err := decode(doc, &payload); err != nil {
		return nil, err
	}

	fragments := []page.Fragment{page.TitleFragment(orDefault(payload.Title, DefaultSiteTitle))}
	if payload.MetaDescription != "" {
		fragments = append(fragments, page.MetaFragment("description", payload.MetaDescription))
	}
	return fragments, nil
}
