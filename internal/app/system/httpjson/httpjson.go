// Package httpjson decodes size-limited JSON request bodies.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTooLarge is returned when the body exceeds the limit.
var ErrTooLarge = errors.New("request body too large")

// Decode reads one JSON value from r's body into dst. Bodies over max bytes
// fail with ErrTooLarge and trailing data after the value is an error.
func Decode(w http.ResponseWriter, r *http.Request, max int64, dst any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, max))
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			return ErrTooLarge
		case errors.Is(err, io.EOF):
			return errors.New("empty body")
		}
		return fmt.Errorf("decode json: %w", err)
	}
	if dec.More() {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
