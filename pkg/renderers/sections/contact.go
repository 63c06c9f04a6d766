package sections

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/section"
)

type contactRenderer struct {
	set *Set
}

func (contactRenderer) Section() section.Name { return section.Contact }

func (r contactRenderer) Render(_ context.Context, doc section.Document, options render.RenderOptions) ([]page.Fragment, error) {
	var payload section.ContactPayload
	if err := decode(doc, &payload); err != nil {
		return nil, err
	}

	info := make([]map[string]any, 0, len(payload.Info))
	for _, item := range payload.Info {
		info = append(info, map[string]any{
			"icon":  item.IconClass,
			"text":  item.Text,
			"link":  item.Link,
			"blank": item.Type == "zalo",
		})
	}

	submit := ""
	if payload.Form != nil {
		submit = payload.Form.SubmitButtonText
	}

	action, method := "#", "post"
	if options.Form.Configured() {
		action = options.Form.Action
		if m := strings.TrimSpace(options.Form.Method); m != "" {
			method = strings.ToLower(m)
		}
	}

	html, err := r.set.render("contact", map[string]any{
		"title": orDefault(payload.Title, DefaultContactTitle),
		"info":  info,
		"map":   payload.GoogleMapIframeSrc,
		"form": map[string]any{
			"action": action,
			"method": method,
			"submit": orDefault(submit, DefaultSubmitButtonText),
		},
	})
	if err != nil {
		return nil, err
	}
	return []page.Fragment{page.Inner(section.PlaceholderContact, html)}, nil
}
