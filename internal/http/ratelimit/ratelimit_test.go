package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestMiddleware_EnforcesBurst(t *testing.T) {
	l := New(rate.Limit(1), 2, time.Minute, nil)
	handler := l.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.5:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first requests within burst should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("request over burst should get 429, got %d", codes[2])
	}
}

func TestMiddleware_SeparateBucketsPerIP(t *testing.T) {
	l := New(rate.Limit(1), 1, time.Minute, nil)
	handler := l.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"203.0.113.5:1234", "203.0.113.6:1234"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("first request from %s should pass, got %d", addr, rec.Code)
		}
	}
}

func TestClientIP_ForwardedForOnlyFromTrustedProxy(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		xff     string
		want    string
	}{
		{"untrusted peer ignores header", nil, "203.0.113.5:1234", "198.51.100.7", "203.0.113.5"},
		{"trusted peer honors header", []string{"203.0.113.0/24"}, "203.0.113.5:1234", "198.51.100.7", "198.51.100.7"},
		{"trusted peer with garbage header", []string{"203.0.113.0/24"}, "203.0.113.5:1234", "not-an-ip", "203.0.113.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(rate.Limit(1), 1, time.Minute, tt.trusted)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := l.clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
