// Package normalize canonicalizes user-entered values before they are
// compared or stored.
package normalize

import "strings"

// Email trims and lowercases an address.
func Email(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Name trims and collapses runs of whitespace. Case is preserved.
func Name(s string) string { return strings.Join(strings.Fields(s), " ") }

// AuthMethod trims and lowercases an auth method value.
func AuthMethod(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Status trims and lowercases an account status.
func Status(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Role trims and lowercases a role.
func Role(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Filter trims a filter value and maps "all" (any case) to "", meaning no
// filter.
func Filter(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}
