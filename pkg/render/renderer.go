package render

import (
	"context"

	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/section"
)

// SectionRenderer turns one decoded section document into page fragments.
// Implementations are pure: they never mutate the page, the orchestrator
// applies the returned fragments in order.
type SectionRenderer interface {
	Section() section.Name
	Render(ctx context.Context, doc section.Document, options RenderOptions) ([]page.Fragment, error)
}

// SectionRendererFunc adapts a function into a SectionRenderer.
type SectionRendererFunc struct {
	Name section.Name
	Fn   func(ctx context.Context, doc section.Document, options RenderOptions) ([]page.Fragment, error)
}

// Section implements SectionRenderer.
func (f SectionRendererFunc) Section() section.Name {
	return f.Name
}

// Render implements SectionRenderer.
func (f SectionRendererFunc) Render(ctx context.Context, doc section.Document, options RenderOptions) ([]page.Fragment, error) {
	return f.Fn(ctx, doc, options)
}
