package sitegen

import (
	"io/fs"

	"github.com/goliatone/go-sitegen/pkg/renderers/sections"
)

// EmbeddedTemplates exposes the built-in section templates so callers can
// copy or override them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return sections.TemplatesFS()
}
