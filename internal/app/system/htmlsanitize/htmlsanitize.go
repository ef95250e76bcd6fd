// Package htmlsanitize cleans user-submitted text before it is stored or
// handed to a browser.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag. script and style elements lose their content too.
var strict = bluemonday.StrictPolicy()

// StripTags returns s with all markup removed, as plain text. Entities are
// decoded so "A & B" round-trips unchanged.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// IsPlainText reports whether s has no tag-like "<...>" sequence.
func IsPlainText(s string) bool {
	i := strings.Index(s, "<")
	return i < 0 || !strings.Contains(s[i:], ">")
}

// PlainTextToHTML escapes s and wraps it in a paragraph, turning newlines
// into <br>. Code such as Vec<T> survives as text.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}
