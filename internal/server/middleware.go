package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ctxKey is the type for context keys used in this package.
type ctxKey int

// requestLoggerKey is the context key for the per-request logger.
const requestLoggerKey ctxKey = 0

// requestLogger assigns each request a UUID, attaches a logger carrying it
// to the request context, and logs the request with its duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		logger := s.logger.With("request_id", requestID)

		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), requestLoggerKey, logger)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		logger.Debug("request",
			"method", r.Method, "path", r.URL.Path,
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

// loggerFrom retrieves the per-request logger from ctx, falling back to the
// given default so handlers always have a valid logger.
func loggerFrom(ctx context.Context, fallback *log.Logger) *log.Logger {
	if l, ok := ctx.Value(requestLoggerKey).(*log.Logger); ok {
		return l
	}
	return fallback
}
