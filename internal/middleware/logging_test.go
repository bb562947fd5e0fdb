package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// captureLogs redirects the default logger for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		level  string
	}{
		{"ok", http.StatusOK, "hello", "level=INFO"},
		{"implicit ok", 0, "hello", "level=INFO"},
		{"client error", http.StatusNotFound, "", "level=WARN"},
		{"server error", http.StatusInternalServerError, "", "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			handler := chimw.RequestID(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				w.Write([]byte(tt.body))
			})))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))

			want := tt.status
			if want == 0 {
				want = http.StatusOK
			}
			if rr.Code != want {
				t.Errorf("status: got %d, want %d", rr.Code, want)
			}
			line := logs.String()
			for _, part := range []string{tt.level, "method=POST", "path=/api/sessions", "request_id="} {
				if !strings.Contains(line, part) {
					t.Errorf("log line %q missing %q", line, part)
				}
			}
			if tt.body != "" && !strings.Contains(line, "bytes=5") {
				t.Errorf("log line %q missing response size", line)
			}
		})
	}
}

func TestResponseWriter(t *testing.T) {
	t.Run("WriteHeader only captures first call", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusInternalServerError)
		if rw.statusCode != http.StatusNotFound {
			t.Errorf("statusCode: got %d, want 404", rw.statusCode)
		}
	})

	t.Run("Write counts bytes and defaults to 200", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
		rw.Write([]byte("test"))
		rw.Write([]byte("ing"))
		if rw.statusCode != http.StatusOK || rw.bytes != 7 || !rw.written {
			t.Errorf("got status %d, bytes %d, written %v", rw.statusCode, rw.bytes, rw.written)
		}
	})

	t.Run("Unwrap exposes the inner writer", func(t *testing.T) {
		rr := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rr}
		if rw.Unwrap() != rr {
			t.Error("Unwrap returned a different writer")
		}
	})
}
