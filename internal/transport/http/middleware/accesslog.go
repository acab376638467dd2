package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mandalnilabja/bioalign/internal/storage"
)

// AccessLog persists one storage.RequestLog per request. Static assets are
// skipped. Storage failures are logged and never change the response.
func AccessLog(store storage.Storage, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := wrap(w)
			panicked := true

			defer func() {
				entry := &storage.RequestLog{
					RequestID:  GetRequestID(r.Context()),
					Method:     r.Method,
					Path:       r.URL.Path,
					StatusCode: statusOf(wrapped, panicked),
					DurationMs: time.Since(start).Milliseconds(),
					RemoteAddr: ClientIP(r),
					UserAgent:  r.UserAgent(),
				}
				if err := store.LogRequest(entry); err != nil && logger != nil {
					logger.Warn("failed to store access log", "error", err, "request_id", entry.RequestID)
				}
			}()

			next.ServeHTTP(wrapped, r)
			panicked = false
		})
	}
}
