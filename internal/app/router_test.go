package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mandalnilabja/bioalign/internal/config"
	"github.com/mandalnilabja/bioalign/internal/landing"
	"github.com/mandalnilabja/bioalign/internal/storage"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler/site"
	"github.com/mandalnilabja/bioalign/internal/transport/http/middleware/ratelimit"
)

const testPassword = "adminpass1"

func newTestStore(t *testing.T) storage.Storage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "router.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	hash, err := storage.HashPassword(testPassword, &storage.Argon2Params{
		Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if err := store.SetAdminPasswordHash(hash); err != nil {
		t.Fatalf("SetAdminPasswordHash failed: %v", err)
	}
	return store
}

func newTestRouter(t *testing.T, opts *RouterOptions) http.Handler {
	t.Helper()
	cache, err := site.NewCache()
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}
	t.Cleanup(cache.Close)

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	repo := handler.NewRepo(landing.DefaultPage(), cache, opts.Storage, opts.Logger)
	return NewRouter(repo, opts)
}

func do(h http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterPublicRoutes(t *testing.T) {
	router := newTestRouter(t, &RouterOptions{})

	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		wantType    string
		wantContain string
	}{
		{name: "landing page", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantType: "text/html; charset=utf-8", wantContain: "Biological Alignment Tool"},
		{name: "landing head", method: http.MethodHead, path: "/", wantStatus: http.StatusOK, wantType: "text/html; charset=utf-8"},
		{name: "stylesheet", method: http.MethodGet, path: "/static/css/landing.css", wantStatus: http.StatusOK, wantContain: ".link-button"},
		{name: "links json", method: http.MethodGet, path: "/api/links", wantStatus: http.StatusOK, wantType: "application/json", wantContain: "Local_Alignment"},
		{name: "health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK, wantContain: `"active"`},
		{name: "info", method: http.MethodGet, path: "/api/info", wantStatus: http.StatusOK, wantContain: `"version"`},
		{name: "unknown page", method: http.MethodGet, path: "/Global_Alignment", wantStatus: http.StatusNotFound, wantType: "text/plain; charset=utf-8"},
		{name: "unknown api", method: http.MethodGet, path: "/api/nope", wantStatus: http.StatusNotFound, wantType: "application/json"},
		{name: "admin disabled", method: http.MethodGet, path: "/api/admin/logs", wantStatus: http.StatusNotFound},
		{name: "preflight", method: http.MethodOptions, path: "/api/links", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, tt.method, tt.path, nil)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantType != "" && rec.Header().Get("Content-Type") != tt.wantType {
				t.Errorf("expected content type %q, got %q", tt.wantType, rec.Header().Get("Content-Type"))
			}
			if tt.wantContain != "" && !strings.Contains(rec.Body.String(), tt.wantContain) {
				t.Errorf("expected body to contain %q", tt.wantContain)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("expected X-Request-ID header")
			}
		})
	}
}

func TestRouterAdminRoutes(t *testing.T) {
	store := newTestStore(t)
	router := newTestRouter(t, &RouterOptions{EnableAdmin: true, Storage: store})

	if rec := do(router, http.MethodGet, "/api/admin/logs", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %d", rec.Code)
	}
	if rec := do(router, http.MethodGet, "/api/admin/logs", map[string]string{"Authorization": "Bearer wrongpass1"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong password, got %d", rec.Code)
	}

	// Landing page loads are recorded in the access log.
	do(router, http.MethodGet, "/", nil)
	do(router, http.MethodGet, "/static/css/landing.css", nil)

	rec := do(router, http.MethodGet, "/api/admin/logs?path=/", map[string]string{"Authorization": "Bearer " + testPassword})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with credentials, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"path":"/"`) {
		t.Errorf("expected landing page request in logs, got %s", rec.Body.String())
	}

	logs, err := store.GetRequestLogs(storage.LogFilter{Path: "/static/css/landing.css"})
	if err != nil {
		t.Fatalf("GetRequestLogs failed: %v", err)
	}
	if len(logs) != 0 {
		t.Error("expected static assets not to be logged")
	}

	rec = do(router, http.MethodGet, "/api/admin/health", map[string]string{"Authorization": "Bearer " + testPassword})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("unexpected admin health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouterRateLimit(t *testing.T) {
	router := newTestRouter(t, &RouterOptions{Limiter: ratelimit.New(1, 2)})

	for i := 0; i < 2; i++ {
		if rec := do(router, http.MethodGet, "/", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	if rec := do(router, http.MethodGet, "/", nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", rec.Code)
	}
}

func TestServerServeAndShutdown(t *testing.T) {
	router := newTestRouter(t, &RouterOptions{})
	cfg := &config.Config{ServerPort: "127.0.0.1:0"}
	srv := NewServer(cfg, router, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		cancel()
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<h1>Biological Alignment Tool</h1>") {
		t.Errorf("unexpected response %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
