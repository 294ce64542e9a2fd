package middlewares

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LoggerMiddleware logs every request with its request ID, status and duration
//
// Server errors are logged at error level, client errors at warn.
func LoggerMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			requestLogger := RequestLogger(r.Context(), logger)
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.statusCode),
				zap.Int("bytes", ww.written),
				zap.Duration("duration", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
			}
			switch {
			case ww.statusCode >= http.StatusInternalServerError:
				requestLogger.Error("HTTP request", fields...)
			case ww.statusCode >= http.StatusBadRequest:
				requestLogger.Warn("HTTP request", fields...)
			default:
				requestLogger.Info("HTTP request", fields...)
			}
		})
	}
}

// responseWriter captures the status code and body size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}
