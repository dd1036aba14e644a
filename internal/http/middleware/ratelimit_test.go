package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newLimitedEngine(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewRateLimiter(rps, burst, KeyByClientIP()).Handler())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func getPing(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	r := newLimitedEngine(1, 3)
	for i := 0; i < 3; i++ {
		if w := getPing(r, "10.0.0.1:1234"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i+1, w.Code)
		}
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	r := newLimitedEngine(0.001, 2)

	getPing(r, "10.0.0.2:1234")
	getPing(r, "10.0.0.2:1234")
	w := getPing(r, "10.0.0.2:1234")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("429 should carry Retry-After")
	}
	if got := w.Body.String(); !strings.Contains(got, "too_many_requests") {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestRateLimiter_BucketsPerClient(t *testing.T) {
	r := newLimitedEngine(0.001, 1)

	getPing(r, "10.0.0.3:1234")
	if w := getPing(r, "10.0.0.3:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("same client should be limited, got %d", w.Code)
	}
	if w := getPing(r, "10.0.0.4:1234"); w.Code != http.StatusOK {
		t.Fatalf("other client must have its own bucket, got %d", w.Code)
	}
}

func TestRateLimiter_ReplayBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ctxKeyRateBypass, true)
		c.Next()
	})
	r.Use(NewRateLimiter(0.001, 1, KeyByClientIP()).Handler())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		if w := getPing(r, "10.0.0.5:1234"); w.Code != http.StatusOK {
			t.Fatalf("bypass request %d: status %d", i+1, w.Code)
		}
	}
}

func TestNewRateLimiter_CoercesBurst(t *testing.T) {
	rl := NewRateLimiter(1, 0, KeyByClientIP())
	if rl.burst != 1 {
		t.Fatalf("burst = %d, want 1", rl.burst)
	}
}
