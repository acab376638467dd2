package middleware

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mandalnilabja/bioalign/internal/storage"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name           string
		existingID     string
		wantPassedThru bool
	}{
		{
			name:           "generates new ID when none provided",
			existingID:     "",
			wantPassedThru: false,
		},
		{
			name:           "uses existing ID from header",
			existingID:     "existing-request-id",
			wantPassedThru: true,
		},
		{
			name:           "replaces oversized ID",
			existingID:     strings.Repeat("x", 200),
			wantPassedThru: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedID = GetRequestID(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.existingID != "" {
				req.Header.Set(RequestIDHeader, tt.existingID)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			respID := rec.Header().Get(RequestIDHeader)
			if respID == "" {
				t.Error("expected X-Request-ID in response header")
			}
			if capturedID != respID {
				t.Errorf("context ID %q differs from header ID %q", capturedID, respID)
			}
			if tt.wantPassedThru && respID != tt.existingID {
				t.Errorf("expected ID %q, got %q", tt.existingID, respID)
			}
			if !tt.wantPassedThru && respID == tt.existingID {
				t.Error("expected a generated ID")
			}
		})
	}
}

func TestGetRequestID_NoContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if id := GetRequestID(req.Context()); id != "" {
		t.Errorf("expected empty ID, got %q", id)
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("sets CORS headers on regular request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("expected Access-Control-Allow-Origin header")
		}
		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("handles OPTIONS preflight request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	out := buf.String()
	for _, want := range []string{"msg=request", "method=GET", "path=/test", "status=418", "request_id="} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output %q", want, out)
		}
	}
}

func TestResponseWriterFlush(t *testing.T) {
	handler := RequestLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := strings.Join(order, ","); got != "outer,inner,handler" {
		t.Errorf("unexpected order %q", got)
	}
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/explode", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if !strings.Contains(buf.String(), "panic serving request") {
		t.Error("expected panic to be logged")
	}
}

func TestRecoverPassThrough(t *testing.T) {
	handler := Recover(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusAccepted {
		t.Errorf("expected status %d, got %d", http.StatusAccepted, rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Errorf("expected 203.0.113.7, got %q", got)
	}

	req.RemoteAddr = "not-a-hostport"
	if got := ClientIP(req); got != "not-a-hostport" {
		t.Errorf("expected raw RemoteAddr fallback, got %q", got)
	}
}

// memStore is an in-memory storage.Storage for middleware tests.
type memStore struct {
	mu      sync.Mutex
	logs    []*storage.RequestLog
	hash    string
	failLog bool
}

func (m *memStore) LogRequest(l *storage.RequestLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLog {
		return errors.New("disk full")
	}
	m.logs = append(m.logs, l)
	return nil
}

func (m *memStore) GetRequestLogs(storage.LogFilter) ([]*storage.RequestLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*storage.RequestLog(nil), m.logs...), nil
}

func (m *memStore) CountRequestLogs() (int64, error) { return int64(len(m.logs)), nil }
func (m *memStore) DeleteRequestLogs(string) (int64, error) { return 0, nil }
func (m *memStore) GetAdminPasswordHash() (string, error) { return m.hash, nil }
func (m *memStore) SetAdminPasswordHash(h string) error { m.hash = h; return nil }
func (m *memStore) HasAdminPassword() (bool, error) { return m.hash != "", nil }
func (m *memStore) Ping() error { return nil }
func (m *memStore) Close() error { return nil }

func TestAccessLog(t *testing.T) {
	store := &memStore{}
	handler := RequestID(AccessLog(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("User-Agent", "test-agent")
	req.RemoteAddr = "192.0.2.1:4000"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// Static assets are not recorded.
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/css/landing.css", nil))

	if len(store.logs) != 1 {
		t.Fatalf("expected 1 stored log, got %d", len(store.logs))
	}
	l := store.logs[0]
	if l.Path != "/missing" || l.StatusCode != http.StatusNotFound || l.Method != http.MethodGet {
		t.Errorf("unexpected log entry: %+v", l)
	}
	if l.RemoteAddr != "192.0.2.1" || l.UserAgent != "test-agent" {
		t.Errorf("unexpected client fields: %+v", l)
	}
	if l.RequestID == "" {
		t.Error("expected request ID to be recorded")
	}
}

func TestAccessLogStorageFailure(t *testing.T) {
	var buf bytes.Buffer
	store := &memStore{failLog: true}
	handler := AccessLog(store, slog.New(slog.NewTextHandler(&buf, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("expected response untouched, got %d %q", rec.Code, rec.Body.String())
	}
	if !strings.Contains(buf.String(), "failed to store access log") {
		t.Error("expected storage failure to be logged")
	}
}

func TestPanicIsLoggedAsServerError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := &memStore{}

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), RequestID, Recover(nil), RequestLogger(logger), AccessLog(store, logger))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/explode", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if len(store.logs) != 1 {
		t.Fatalf("expected 1 stored log, got %d", len(store.logs))
	}
	if store.logs[0].StatusCode != http.StatusInternalServerError {
		t.Errorf("expected stored status 500, got %d", store.logs[0].StatusCode)
	}
	out := buf.String()
	if !strings.Contains(out, "status=500") || !strings.Contains(out, "level=ERROR") {
		t.Errorf("expected request log with status 500 at error level, got %q", out)
	}
}
