package sections

import (
	"context"
	"strconv"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/section"
)

type aboutRenderer struct {
	set *Set
}

func (aboutRenderer) Section() section.Name { return section.About }

// Render fills the about section. An empty image collection yields a single
// placeholder slide and disables carousel looping and autoplay.
func (r aboutRenderer) Render(_ context.Context, doc section.Document, _ render.RenderOptions) ([]page.Fragment, error) {
	var payload section.AboutPayload
	if err := decode(doc, &payload); err != nil {
		return nil, err
	}

	delay := DefaultAutoplayDelayMS
	if payload.Carousel != nil && payload.Carousel.AutoplayDelayMS > 0 {
		delay = payload.Carousel.AutoplayDelayMS
	}

	slides := make([]map[string]any, 0, len(payload.Images))
	for _, img := range payload.Images {
		slides = append(slides, map[string]any{
			"placeholder": false,
			"url":         img.URL,
			"alt":         img.Alt,
		})
	}

	enabled := len(slides) > 0
	if !enabled {
		slides = append(slides, map[string]any{
			"placeholder": true,
			"text":        DefaultNoImages,
		})
	}

	html, err := r.set.render("about", map[string]any{
		"title":       orDefault(payload.Title, DefaultAboutTitle),
		"description": render.RichText(payload.Description),
		"slides":      slides,
		"carousel": map[string]any{
			"loop":     strconv.FormatBool(enabled),
			"autoplay": strconv.FormatBool(enabled),
			"delay":    strconv.Itoa(delay),
		},
	})
	if err != nil {
		return nil, err
	}
	return []page.Fragment{page.Inner(section.PlaceholderAbout, html)}, nil
}
