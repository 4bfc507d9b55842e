// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/tourismboard/internal/app/system/selection"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and answers the client
// with a friendly page (or JSON body). Handlers hold one in an ErrLog field.
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
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if id := selection.SessionID(r); id != "" {
		fields = append(fields, zap.String("session_id", id))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}

// LogServerError logs at error level and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, e.fields(r, err)...)
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogNotFound logs at info level and renders a 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Info(msg, e.fields(r, err)...)
	RenderNotFound(w, r, userMsg, backURL)
}

// LogJSON logs server errors (5xx) at error level, client errors at warn,
// and replies with a JSON error body.
func (e *ErrorLogger) LogJSON(w http.ResponseWriter, r *http.Request, status int, msg string, err error, userMsg string) {
	if status >= http.StatusInternalServerError {
		e.Log.Error(msg, e.fields(r, err)...)
	} else {
		e.Log.Warn(msg, e.fields(r, err)...)
	}
	WriteJSON(w, status, userMsg)
}
