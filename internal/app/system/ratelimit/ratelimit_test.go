package ratelimit_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wekezagroup/wekeza/internal/app/system/ratelimit"
)

func TestLimiter_Allow(t *testing.T) {
	l := ratelimit.New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("request over the limit should be denied")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("a different key has its own window")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.10:4431"
	if got := ratelimit.ClientIP(r); got != "192.0.2.10" {
		t.Errorf("RemoteAddr fallback: got %q", got)
	}

	r.Header.Set("X-Real-IP", "198.51.100.7")
	if got := ratelimit.ClientIP(r); got != "198.51.100.7" {
		t.Errorf("X-Real-IP: got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.7")
	if got := ratelimit.ClientIP(r); got != "203.0.113.9" {
		t.Errorf("X-Forwarded-For first hop: got %q", got)
	}
}
