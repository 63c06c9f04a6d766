// Package page holds the mutable page model the orchestrator owns while a
// landing page is assembled. Renderers never touch it directly; they return
// Fragments which the orchestrator applies in order.
package page
