// Package template defines the renderer-agnostic template contract shared by
// the section renderers, the error reporter, and the interaction wiring.
package template
