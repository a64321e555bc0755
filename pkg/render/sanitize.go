package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeHTML strips every tag from text received from the prediction
// service. The result is HTML-escaped and safe to emit verbatim in a page.
func SanitizeHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(strictPolicy().Sanitize(trimmed))
}

// PlainText strips markup like SanitizeHTML but returns unescaped text for
// terminal output.
func PlainText(raw string) string {
	return html.UnescapeString(SanitizeHTML(raw))
}

func strictPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
