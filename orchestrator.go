// Package sitegen renders a landing page from seven JSON section documents.
// The root package re-exports the common entry points; see pkg/orchestrator
// for the full pipeline.
package sitegen

import (
	"context"

	"github.com/goliatone/go-sitegen/pkg/orchestrator"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/section"
)

// RenderOptions carries per-request renderer options such as the theme and
// the contact form target.
type RenderOptions = render.RenderOptions

// FormTarget describes where the contact form posts.
type FormTarget = render.FormTarget

// Result is the outcome of one page generation.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the section documents under dataBase (a directory or an
// http(s) base URL), renders them into template and returns the page. Load
// and render failures are written onto the page and reported in Result.
func Generate(ctx context.Context, template, dataBase string, options ...orchestrator.Option) (Result, error) {
	locator, err := section.LocatorFor(dataBase)
	if err != nil {
		return Result{}, err
	}
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Template: template,
		Locator:  locator,
	})
}
