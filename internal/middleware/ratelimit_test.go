package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Second)
	defer rl.Stop()

	for i := range 3 {
		if !rl.allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("test-ip") {
		t.Error("4th request should be rate-limited")
	}
	if !rl.allow("other-ip") {
		t.Error("different IP should be allowed")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(2, 100*time.Millisecond)
	defer rl.Stop()

	rl.allow("test-ip")
	rl.allow("test-ip")
	if rl.allow("test-ip") {
		t.Error("should be rate-limited")
	}

	time.Sleep(150 * time.Millisecond)
	if !rl.allow("test-ip") {
		t.Error("should be allowed after window expires")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	for i := range 2 {
		if rr := send(); rr.Code != http.StatusCreated {
			t.Fatalf("request %d: got status %d, want 201", i+1, rr.Code)
		}
	}

	rr := send()
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d, want 429", rr.Code)
	}
	secs, err := strconv.Atoi(rr.Header().Get("Retry-After"))
	if err != nil || secs < 1 || secs > 60 {
		t.Errorf("Retry-After = %q", rr.Header().Get("Retry-After"))
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil || body["error"] == "" {
		t.Errorf("body = %v, %v", body, err)
	}
}

func TestRateLimiterStopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	rl.Stop()
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{"x-forwarded-for single", "10.0.0.1", "", "192.168.1.1:1234", "10.0.0.1"},
		{"x-forwarded-for multiple", "10.0.0.1, 172.16.0.1", "", "192.168.1.1:1234", "10.0.0.1"},
		{"x-real-ip", "", "10.0.0.2", "192.168.1.1:1234", "10.0.0.2"},
		{"remote addr only", "", "", "192.168.1.1:1234", "192.168.1.1"},
		{"remote addr no port", "", "", "192.168.1.1", "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(10, 200*time.Millisecond)
	defer rl.Stop()

	rl.allow("ip-old")
	rl.allow("ip-fresh")
	time.Sleep(250 * time.Millisecond)
	rl.allow("ip-fresh")

	rl.cleanup()

	rl.mu.RLock()
	_, oldExists := rl.clients["ip-old"]
	_, freshExists := rl.clients["ip-fresh"]
	rl.mu.RUnlock()

	if oldExists {
		t.Error("ip-old should have been cleaned up")
	}
	if !freshExists {
		t.Error("ip-fresh should still exist")
	}
}
