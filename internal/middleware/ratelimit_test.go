package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterPerClientWindows(t *testing.T) {
	rl := NewRateLimiter()

	// The kitchen tablet burning through its window must not block the
	// phone in the other room.
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.11", 3, time.Minute) {
			t.Fatalf("tablet request %d denied inside the window", i+1)
		}
	}
	if rl.Allow("10.0.0.11", 3, time.Minute) {
		t.Error("tablet allowed past its limit")
	}
	if !rl.Allow("10.0.0.12", 3, time.Minute) {
		t.Error("second client denied by first client's window")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		rl.Allow("client", 3, 10*time.Millisecond)
	}
	if rl.Allow("client", 3, 10*time.Millisecond) {
		t.Error("allowed past the limit inside the window")
	}

	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("client", 3, 10*time.Millisecond) {
		t.Error("denied after the window expired")
	}
}

func TestRateLimiterCleanupDropsOnlyExpired(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("stale", 5, 10*time.Millisecond)
	time.Sleep(15 * time.Millisecond)
	rl.Allow("fresh", 5, time.Minute)

	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.entries["stale"]; ok {
		t.Error("expired window survived cleanup")
	}
	if _, ok := rl.entries["fresh"]; !ok {
		t.Error("active window removed by cleanup")
	}
}

func TestRateLimitMiddlewareKeysByClientIP(t *testing.T) {
	rl := NewRateLimiter()
	var served int
	handler := RateLimit(rl, ClientIP, 2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
		w.WriteHeader(http.StatusCreated)
	}))

	post := func(forwardedFor string) int {
		req := httptest.NewRequest("POST", "/api/grocery", nil)
		if forwardedFor != "" {
			req.Header.Set("X-Forwarded-For", forwardedFor)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := post("10.0.0.11"); code != http.StatusCreated {
			t.Errorf("request %d: status = %d, want %d", i+1, code, http.StatusCreated)
		}
	}
	if code := post("10.0.0.11"); code != http.StatusTooManyRequests {
		t.Errorf("over-limit status = %d, want %d", code, http.StatusTooManyRequests)
	}
	if code := post("10.0.0.12"); code != http.StatusCreated {
		t.Errorf("other client status = %d, want %d", code, http.StatusCreated)
	}
	if served != 3 {
		t.Errorf("handler served %d requests, want 3", served)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/schedule", nil)
	req.RemoteAddr = "10.0.0.5:52100"
	if got := ClientIP(req); got != "10.0.0.5" {
		t.Errorf("remote addr client = %q, want 10.0.0.5", got)
	}

	// Behind the reverse proxy the first hop in the chain is the client.
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Errorf("forwarded client = %q, want 203.0.113.7", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Errorf("single forwarded client = %q, want 203.0.113.9", got)
	}
}
