package handler

import (
	"net/http"
	"time"

	"pdf-book-reader/internal/domain"
)

// RequestLogger logs every request and turns handler panics into 500s
type RequestLogger struct {
	logger domain.Logger
}

// NewRequestLogger creates a new request logging middleware
func NewRequestLogger(logger domain.Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

// Middleware returns the http middleware function
func (m *RequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				m.logger.Error("Handler panicked", nil, "method", r.Method, "path", r.URL.Path, "panic", p)
				if !rec.wroteHeader {
					writeError(rec, http.StatusInternalServerError, "Internal server error")
				}
			}

			fields := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start).String(),
			}
			if rec.status >= http.StatusInternalServerError {
				m.logger.Warn("Request failed", fields...)
				return
			}
			m.logger.Debug("Request handled", fields...)
		}()

		next.ServeHTTP(rec, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
