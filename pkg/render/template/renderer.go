package template

import (
	"io"
)

// TemplateRenderer is the seam section renderers use to turn payloads into
// markup. The pongo2 adapter in the gotemplate package is the default
// implementation.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
