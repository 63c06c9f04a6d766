package page

import (
	"fmt"
	"strings"
)

// Mode selects how a fragment lands on its target element.
type Mode int

const (
	// ModeInner replaces the target's children.
	ModeInner Mode = iota
	// ModeOuter replaces the target element itself.
	ModeOuter
	// ModeAppend appends after the target's existing children.
	ModeAppend
)

func (m Mode) String() string {
	switch m {
	case ModeInner:
		return "inner"
	case ModeOuter:
		return "outer"
	case ModeAppend:
		return "append"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Fragment is one HTML mutation targeting an element by id.
type Fragment struct {
	Target string
	Mode   Mode
	HTML   string
	// Attrs are set on the target before HTML is applied; style declarations
	// are merged into the existing style attribute. Ignored for
	// ModeOuter since the target is replaced.
	Attrs map[string]string
}

// Inner builds a ModeInner fragment.
func Inner(target, html string) Fragment {
	return Fragment{Target: target, Mode: ModeInner, HTML: html}
}

// Outer builds a ModeOuter fragment.
func Outer(target, html string) Fragment {
	return Fragment{Target: target, Mode: ModeOuter, HTML: html}
}

const (
	targetTitle      = "head:title"
	targetMetaPrefix = "head:meta:"
)

// TitleFragment sets the document title. HTML carries plain text.
func TitleFragment(text string) Fragment {
	return Fragment{Target: targetTitle, HTML: text}
}

// MetaFragment sets <meta name=name content=content> in the head.
func MetaFragment(name, content string) Fragment {
	return Fragment{Target: targetMetaPrefix + name, HTML: content}
}

// WithAttr returns a copy of f with attribute name set to value.
func (f Fragment) WithAttr(name, value string) Fragment {
	attrs := make(map[string]string, len(f.Attrs)+1)
	for k, v := range f.Attrs {
		attrs[k] = v
	}
	attrs[strings.TrimSpace(name)] = value
	f.Attrs = attrs
	return f
}
