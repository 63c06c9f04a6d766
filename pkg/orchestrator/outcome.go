package orchestrator

import (
	"github.com/goliatone/go-sitegen/pkg/page"
	"github.com/goliatone/go-sitegen/pkg/section"
	"github.com/goliatone/go-sitegen/pkg/wiring"
)

// Outcome tags how far the pipeline got.
type Outcome int

const (
	// OutcomeRendered means every section rendered and the page was wired.
	OutcomeRendered Outcome = iota
	// OutcomeLoadFailed means a section could not be fetched or decoded; the
	// page body holds the fatal diagnostic.
	OutcomeLoadFailed
	// OutcomeRenderFailed means validation or a renderer failed; a banner was
	// appended below whatever rendered first.
	OutcomeRenderFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRendered:
		return "rendered"
	case OutcomeLoadFailed:
		return "load_failed"
	case OutcomeRenderFailed:
		return "render_failed"
	default:
		return "unknown"
	}
}

// Result carries the produced page together with the pipeline outcome. The
// page is always produced, even when Outcome is not OutcomeRendered.
type Result struct {
	HTML    []byte
	Page    *page.Page
	Outcome Outcome
	// Err is the load or render failure reported on the page, nil on success.
	Err error
	// Aggregate holds every document loaded before the pipeline stopped.
	Aggregate section.Aggregate
	// Rendered lists the sections whose fragments were applied, in order.
	Rendered []section.Name
	Wiring   wiring.Result
}

// OK reports whether the page rendered without a diagnostic.
func (r Result) OK() bool {
	return r.Outcome == OutcomeRendered && r.Err == nil
}
