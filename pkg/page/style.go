package page

import "strings"

// mergeStyle overlays the declarations of update onto existing. Properties
// already present keep their position and take the new value; new ones are
// appended.
func mergeStyle(existing, update string) string {
	decls := splitDeclarations(existing)
	index := make(map[string]int, len(decls))
	for i, decl := range decls {
		index[styleProperty(decl)] = i
	}
	for _, decl := range splitDeclarations(update) {
		prop := styleProperty(decl)
		if i, ok := index[prop]; ok && prop != "" {
			decls[i] = decl
			continue
		}
		index[prop] = len(decls)
		decls = append(decls, decl)
	}
	return strings.Join(decls, "; ")
}

// splitDeclarations splits on ';' outside quotes and parentheses so values
// such as url("data:image/png;base64,...") stay whole.
func splitDeclarations(style string) []string {
	var (
		out   []string
		depth int
		quote rune
		start int
	)
	flush := func(end int) {
		if decl := strings.TrimSpace(style[start:end]); decl != "" {
			out = append(out, decl)
		}
	}
	for i, r := range style {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ';' && depth == 0:
			flush(i)
			start = i + 1
		}
	}
	flush(len(style))
	return out
}

func styleProperty(decl string) string {
	prop, _, ok := strings.Cut(decl, ":")
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(prop))
}
