// internal/app/system/ratelimit/ratelimit_test.go

package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/habitstack/habitstack/internal/app/system/ratelimit"
)

func TestAllowWithinLimit(t *testing.T) {
	l := ratelimit.New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d denied within limit", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("request over limit allowed")
	}
}

func TestAllowIsPerKey(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	if !l.Allow("1.2.3.4") {
		t.Fatal("first key denied")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("independent key denied")
	}
}

func TestRemainingAndReset(t *testing.T) {
	l := ratelimit.New(5, time.Minute)

	if got := l.Remaining("1.2.3.4"); got != 5 {
		t.Errorf("remaining before use = %d", got)
	}
	l.Allow("1.2.3.4")
	l.Allow("1.2.3.4")
	if got := l.Remaining("1.2.3.4"); got != 3 {
		t.Errorf("remaining after two = %d", got)
	}
	l.Reset("1.2.3.4")
	if got := l.Remaining("1.2.3.4"); got != 5 {
		t.Errorf("remaining after reset = %d", got)
	}
}

func TestWindowExpires(t *testing.T) {
	l := ratelimit.New(1, 20*time.Millisecond)

	if !l.Allow("1.2.3.4") {
		t.Fatal("first request denied")
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("second request in window allowed")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("1.2.3.4") {
		t.Error("request after window expiry denied")
	}
}

func TestMiddlewareReturns429(t *testing.T) {
	l := ratelimit.New(1, time.Minute)
	handler := l.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/habits", nil)
	req.RemoteAddr = "1.2.3.4:5678"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "10.0.0.1:5678", nil, "10.0.0.1"},
		{"x-forwarded-for", "10.0.0.1:5678", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"}, "203.0.113.5"},
		{"x-real-ip", "10.0.0.1:5678", map[string]string{"X-Real-IP": "203.0.113.9"}, "203.0.113.9"},
		{"no port", "10.0.0.1", nil, "10.0.0.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := ratelimit.ClientIP(req); got != tc.want {
				t.Errorf("ClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}
