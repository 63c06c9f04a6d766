// Package sections provides the built-in renderers for the seven landing page
// sections. Each renderer decodes its document, applies the fallback table in
// defaults.go and renders an embedded pongo2 template into page fragments.
//
//	set, err := sections.New()
//	if err != nil {
//		return err
//	}
//	registry := render.NewRegistry()
//	set.Register(registry)
package sections
