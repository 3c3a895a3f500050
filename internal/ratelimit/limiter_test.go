package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	l := New(10, 5)
	if l.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", l.defaultBurst)
	}

	l2 := New(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestAllowPerClient(t *testing.T) {
	l := New(0.001, 1)

	if !l.Allow("10.0.0.1") {
		t.Error("first request should pass")
	}
	if l.Allow("10.0.0.1") {
		t.Error("second request should be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("other client should pass")
	}
}

func TestUnlimited(t *testing.T) {
	l := New(0, 1)
	for i := 0; i < 100; i++ {
		if !l.Allow("c") {
			t.Fatalf("request %d limited with rate disabled", i)
		}
	}
}

func TestMiddleware(t *testing.T) {
	l := New(0.001, 1)
	h := l.Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:4321"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("first status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.0.2.7:4321", "192.0.2.7"},
		{"[2001:db8::1]:80", "2001:db8::1"},
		{"192.0.2.9", "192.0.2.9"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = tt.remote
		if got := ClientKey(r); got != tt.want {
			t.Errorf("ClientKey(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}

func TestCleanupEvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New(0.001, 1)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	now = now.Add(5 * time.Minute)
	l.Allow("10.0.0.2")

	if n := l.Len(); n != 2 {
		t.Fatalf("Len = %d, want 2", n)
	}

	now = now.Add(6 * time.Minute)
	if removed := l.Cleanup(10 * time.Minute); removed != 1 {
		t.Errorf("Cleanup removed %d, want 1", removed)
	}
	if n := l.Len(); n != 1 {
		t.Errorf("Len = %d, want 1", n)
	}

	// The evicted client gets a fresh bucket; the kept one is still limited.
	if !l.Allow("10.0.0.1") {
		t.Error("evicted client should start with a full bucket")
	}
	if l.Allow("10.0.0.2") {
		t.Error("kept client should still be limited")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	l := New(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, time.Millisecond, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
