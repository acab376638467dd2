package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
)

// Recover turns handler panics into 500 responses. It wraps a sentryhttp
// handler so panics are reported to Sentry (a no-op without a DSN) before
// being recovered here.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	reporter := sentryhttp.New(sentryhttp.Options{
		Repanic: true,
		Timeout: 2 * time.Second,
	})

	return func(next http.Handler) http.Handler {
		reported := reporter.Handle(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				if logger != nil {
					logger.Error("panic serving request",
						"panic", rec,
						"path", r.URL.Path,
						"request_id", GetRequestID(r.Context()),
						"stack", string(debug.Stack()),
					)
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			reported.ServeHTTP(w, r)
		})
	}
}
