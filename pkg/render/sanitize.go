package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextOnce   sync.Once
	richTextPolicy *bluemonday.Policy
)

// RichText sanitises author-supplied markup, converting newlines to <br> the
// way the description fields expect. The result is safe to emit unescaped.
func RichText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	withBreaks := strings.ReplaceAll(strings.ReplaceAll(trimmed, "\r\n", "\n"), "\n", "<br>")
	return strings.TrimSpace(richTextSanitizer().Sanitize(withBreaks))
}

func richTextSanitizer() *bluemonday.Policy {
	richTextOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").OnElements("span", "i", "strong", "em")
		policy.AllowAttrs("target").Matching(bluemonday.Paragraph).OnElements("a")
		richTextPolicy = policy
	})
	return richTextPolicy
}
