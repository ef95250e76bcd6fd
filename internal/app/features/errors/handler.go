// internal/app/features/errors/handler.go
package errors

import "net/http"

// NotFoundHandler answers unknown routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	NotFound(w, "not found")
}

// MethodNotAllowedHandler answers known routes with the wrong method.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	Write(w, http.StatusMethodNotAllowed, "method not allowed")
}
