// Package site serves the landing page and its static assets.
package site

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/mandalnilabja/bioalign/internal/landing"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/bioalign/internal/transport/http/middleware"
	"github.com/mandalnilabja/bioalign/web"
)

// Handlers holds the dependencies for the landing page handlers.
type Handlers struct {
	Page   landing.Page
	Cache  *ristretto.Cache[string, []byte]
	Logger *slog.Logger

	etag   string
	static http.Handler
}

// New creates the landing page handlers. cache and logger may be nil.
func New(page landing.Page, cache *ristretto.Cache[string, []byte], logger *slog.Logger) *Handlers {
	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		// Only reachable if the embed directive changes.
		panic("failed to create static sub filesystem: " + err.Error())
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Handlers{
		Page:   page,
		Cache:  cache,
		Logger: logger,
		etag:   `"` + page.Fingerprint() + `"`,
		static: http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))),
	}
}

// NewCache creates the render cache shared by the page and info handlers.
func NewCache() (*ristretto.Cache[string, []byte], error) {
	return ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1e4,
		MaxCost:     1 << 24,
		BufferItems: 64,
		Metrics:     true,
	})
}

// ServePage handles GET / (and HEAD /).
func (h *Handlers) ServePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", h.etag)
	w.Header().Set("Cache-Control", "no-cache")

	if etagMatches(r.Header.Get("If-None-Match"), h.etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	body, hit, err := h.render()
	if err != nil {
		h.Logger.Error("failed to render landing page",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// ServeLinks handles GET /api/links with the page content as JSON.
func (h *Handlers) ServeLinks(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, h.Page, http.StatusOK)
}

// ServeStatic handles GET /static/ from the embedded filesystem.
func (h *Handlers) ServeStatic(w http.ResponseWriter, r *http.Request) {
	h.static.ServeHTTP(w, r)
}

// render returns the page bytes, from the cache when possible.
func (h *Handlers) render() ([]byte, bool, error) {
	key := "page:" + h.Page.Fingerprint()

	if h.Cache != nil {
		if body, found := h.Cache.Get(key); found {
			return body, true, nil
		}
	}

	var buf bytes.Buffer
	if err := h.Page.Render(&buf); err != nil {
		return nil, false, err
	}
	body := buf.Bytes()

	if h.Cache != nil {
		h.Cache.Set(key, body, int64(len(body)))
		// Sets are buffered; wait so the next request can see it.
		h.Cache.Wait()
	}
	return body, false, nil
}

// etagMatches implements the If-None-Match comparison (weak, list or "*").
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
