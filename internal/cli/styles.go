package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	OK    lipgloss.Style
	Fail  lipgloss.Style
	Warn  lipgloss.Style
	Label lipgloss.Style
	Muted lipgloss.Style
}

func newStyles() styles {
	return styles{
		OK:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Fail:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Warn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Label: lipgloss.NewStyle().Bold(true),
		Muted: lipgloss.NewStyle().Faint(true),
	}
}

func (s styles) ok(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, s.OK.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func (s styles) fail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, s.Fail.Render("✗")+" "+fmt.Sprintf(format, args...))
}

func (s styles) warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, s.Warn.Render("!")+" "+fmt.Sprintf(format, args...))
}

func (s styles) field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", s.Label.Render(label+":"), value)
}
