// internal/domain/models/authmethods.go
package models

import "strings"

// Auth method values stored on User.AuthMethod.
const (
	AuthMethodPassword = "password"
	AuthMethodGoogle   = "google"
)

// AuthMethod is a sign-in option with its display label.
type AuthMethod struct {
	Value string
	Label string
}

// AllAuthMethods lists every supported sign-in option.
var AllAuthMethods = []AuthMethod{
	{Value: AuthMethodPassword, Label: "Email & Password"},
	{Value: AuthMethodGoogle, Label: "Google"},
}

// IsValidAuthMethod checks if a value is a supported auth method.
func IsValidAuthMethod(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, m := range AllAuthMethods {
		if m.Value == v {
			return true
		}
	}
	return false
}
