package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/mundiclass/backend/pkg/logger"
)

type loggingWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (w *loggingWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *loggingWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// RequestLogging logs every request with its trace ID, status and duration
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		traceID := "no-trace"
		if span := trace.SpanFromContext(r.Context()); span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		}

		lw := &loggingWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lw, r)

		duration := time.Since(start)

		logEvent := logger.WithContext(r.Context()).Info()
		if lw.statusCode >= 500 {
			logEvent = logger.WithContext(r.Context()).Error()
		} else if lw.statusCode >= 400 {
			logEvent = logger.WithContext(r.Context()).Warn()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", lw.statusCode).
			Dur("duration", duration).
			Int64("duration_ms", duration.Milliseconds()).
			Int("response_size", lw.size).
			Str("trace_id", traceID).
			Str("request_id", r.Header.Get("X-Request-Id")).
			Msg("Request completed")
	})
}
