// internal/app/system/limits/limits.go
package limits

// Request body size limits. Bodies above these are rejected before decoding.
const (
	// MaxJSONBodySize covers ordinary API requests (login, settings, reports).
	MaxJSONBodySize = 64 << 10 // 64 KB

	// MaxNoteBodySize fits a note of the maximum rune count at four bytes per
	// rune plus JSON escaping.
	MaxNoteBodySize = 128 << 10 // 128 KB

	// MaxImportBodySize is for admin lesson and resource imports.
	MaxImportBodySize = 8 << 20 // 8 MB
)
