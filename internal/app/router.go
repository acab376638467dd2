package app

import (
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/bioalign/internal/storage"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/bioalign/internal/transport/http/middleware"
	"github.com/mandalnilabja/bioalign/internal/transport/http/middleware/auth"
	"github.com/mandalnilabja/bioalign/internal/transport/http/middleware/ratelimit"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	// EnableAdmin mounts /api/admin; requires Storage
	EnableAdmin bool
	Logger      *slog.Logger
	// Storage, when set, also records an access log entry per request
	Storage storage.Storage
	Limiter *ratelimit.Limiter
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	if opts == nil {
		opts = &RouterOptions{}
	}

	mux := http.NewServeMux()

	// Landing page; GET patterns also match HEAD
	mux.HandleFunc("GET /{$}", repo.Site.ServePage)
	mux.HandleFunc("GET /static/", repo.Site.ServeStatic)

	// Public JSON routes
	mux.HandleFunc("GET /api/links", repo.Site.ServeLinks)
	mux.HandleFunc("GET /api/health", repo.Infra.HealthCheck)
	mux.HandleFunc("GET /api/info", repo.Infra.Info)

	if opts.EnableAdmin && opts.Storage != nil {
		registerAdminRoutes(mux, repo, opts)
	}

	mux.HandleFunc("/", shared.NotFound)

	// Apply middleware chain (order: outer to inner)
	mws := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.CORS,
		middleware.Recover(opts.Logger),
	}
	if opts.Logger != nil {
		mws = append(mws, middleware.RequestLogger(opts.Logger))
	}
	if opts.Storage != nil {
		mws = append(mws, middleware.AccessLog(opts.Storage, opts.Logger))
	}
	mws = append(mws, ratelimit.Middleware(opts.Limiter))

	return middleware.Chain(mux, mws...)
}

// registerAdminRoutes adds all admin API routes to the router.
func registerAdminRoutes(mux *http.ServeMux, repo *handler.Repo, opts *RouterOptions) {
	adminAuth := auth.AdminAuth(opts.Storage)

	withAuth := func(h http.HandlerFunc) http.Handler {
		return adminAuth(h)
	}

	mux.Handle("GET /api/admin/logs", withAuth(repo.Admin.GetRequestLogs))
	mux.Handle("DELETE /api/admin/logs", withAuth(repo.Admin.DeleteRequestLogs))
	mux.Handle("PUT /api/admin/password", withAuth(repo.Admin.ChangeAdminPassword))
	mux.Handle("GET /api/admin/health", withAuth(repo.Admin.AdminHealth))
}
