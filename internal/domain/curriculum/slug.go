// internal/domain/curriculum/slug.go
package curriculum

import (
	"regexp"
	"strings"
)

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// GenerateSlug turns free text into a URL-friendly slug:
// "Setup: Install Rust!" -> "setup-install-rust".
func GenerateSlug(topic string) string {
	s := strings.ToLower(topic)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ExtractTopicSlug slugs the part of a roster topic before the first colon.
func ExtractTopicSlug(topic string) string {
	main, _, _ := strings.Cut(topic, ":")
	return GenerateSlug(strings.TrimSpace(main))
}
