package sections

import (
	"context"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/section"
)

type footerRenderer struct {
	set *Set
}

func (footerRenderer) Section() section.Name { return section.Footer }

func (r footerRenderer) Render(_ context.Context, doc section.Document, _ render.RenderOptions) ([]page.Fragment, error) {
	var payload section.FooterPayload
	if err := decode(doc, &payload); err != nil {
		return nil, err
	}

	social := make([]map[string]any, 0, len(payload.SocialLinks))
	for _, link := range payload.SocialLinks {
		social = append(social, map[string]any{
			"url":      orDefault(link.URL, DefaultSocialLink),
			"platform": link.Platform,
			"icon":     link.IconClass,
		})
	}

	html, err := r.set.render("footer", map[string]any{
		"company":   payload.CompanyName,
		"tax_code":  payload.TaxCode,
		"address":   payload.Address,
		"social":    social,
		"copyright": payload.CopyrightText,
	})
	if err != nil {
		return nil, err
	}
	return []page.Fragment{page.Inner(section.PlaceholderFooter, html)}, nil
}
