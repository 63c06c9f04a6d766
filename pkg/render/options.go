package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without reaching outside their own section document.
type RenderOptions struct {
	// Theme carries the resolved theme selection. Nil when no theme is
	// configured.
	Theme *ThemeConfig
	// Form describes where the contact form submits. A zero value keeps the
	// form pointing at "#".
	Form FormTarget
}

// FormTarget is the configured destination of the contact form.
type FormTarget struct {
	Action string
	Method string
	// Kind names the endpoint flavour (local, relay, sheets) and is exposed to
	// the runtime script as a data attribute.
	Kind string
}

// Configured reports whether a destination has been set.
func (f FormTarget) Configured() bool {
	return f.Action != ""
}

// ThemeConfig is the resolved theme data handed to renderers.
type ThemeConfig = theme.RendererConfig
