package sections

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/section"
)

type pricingRenderer struct {
	set *Set
}

func (pricingRenderer) Section() section.Name { return section.Pricing }

// Render builds the price table. Documents without a table leave the
// placeholder untouched.
func (r pricingRenderer) Render(_ context.Context, doc section.Document, _ render.RenderOptions) ([]page.Fragment, error) {
	var payload section.PricingPayload
	if err := decode(doc, &payload); err != nil {
		return nil, err
	}
	if payload.Table == nil {
		return nil, nil
	}

	headers := make([]string, 0, len(payload.Table.Headers))
	for _, header := range payload.Table.Headers {
		headers = append(headers, cellText(header))
	}

	rows := make([][]string, 0, len(payload.Table.Rows))
	for _, row := range payload.Table.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cellText(cell))
		}
		rows = append(rows, cells)
	}

	html, err := r.set.render("pricing", map[string]any{
		"title":   orDefault(payload.Title, DefaultPricingTitle),
		"headers": headers,
		"rows":    rows,
		"note":    render.RichText(payload.Note),
	})
	if err != nil {
		return nil, err
	}
	return []page.Fragment{page.Inner(section.PlaceholderPricing, html)}, nil
}

func cellText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
