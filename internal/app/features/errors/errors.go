// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/learnrust/internal/app/system/auth"
	"go.uber.org/zap"
)

// Response is the body of every JSON error.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ErrorLogger logs a failure with request context and writes a JSON error.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fs := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if u, ok := auth.CurrentUser(r); ok && u != nil {
		fs = append(fs, zap.String("user_id", u.ID))
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	return fs
}

// LogServerError logs at error level and responds 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.Log.Error(logMsg, e.fields(r, err)...)
	Write(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs at info level and responds 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.Log.Info(logMsg, e.fields(r, err)...)
	Write(w, http.StatusBadRequest, userMsg)
}

// LogForbidden logs at warn level and responds 403 with userMsg.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, logMsg string, userMsg string) {
	e.Log.Warn(logMsg, e.fields(r, nil)...)
	Write(w, http.StatusForbidden, userMsg)
}

// NotFound responds 404 without logging.
func NotFound(w http.ResponseWriter, msg string) {
	Write(w, http.StatusNotFound, msg)
}

// Validation responds 400 with the first message and every field message.
func Validation(w http.ResponseWriter, msg string, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, Response{Error: msg, Fields: fields})
}

// Write sends {"error": msg} with status.
func Write(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Response{Error: msg})
}

// WriteJSON encodes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
