// Package orchestrator wires the loader → validate → section renderers →
// interaction wiring pipeline over a page template, providing dependency
// injection friendly helpers for consumers that prefer a single entry point.
package orchestrator
