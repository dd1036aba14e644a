package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func serveWithSecurity(opt SecurityOptions, mutate func(*http.Request)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), SecurityHeaders(opt))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	w := serveWithSecurity(SecurityOptions{}, nil)

	for hdr, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "no-referrer",
	} {
		if got := w.Header().Get(hdr); got != want {
			t.Errorf("%s = %q, want %q", hdr, got, want)
		}
	}
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must be off by default")
	}
	if w.Header().Get("Cache-Control") != "" {
		t.Error("Cache-Control must be off by default")
	}
}

func TestSecurityHeaders_NoStoreAndPolicy(t *testing.T) {
	w := serveWithSecurity(SecurityOptions{NoStore: true, EnablePolicy: true}, nil)

	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q", got)
	}
	if w.Header().Get("Permissions-Policy") == "" {
		t.Error("Permissions-Policy missing")
	}
	if got := w.Header().Get("X-Permitted-Cross-Domain-Policies"); got != "none" {
		t.Errorf("X-Permitted-Cross-Domain-Policies = %q", got)
	}
}

func TestSecurityHeaders_HSTSOnlyOverHTTPS(t *testing.T) {
	opt := SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour}

	if w := serveWithSecurity(opt, nil); w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be emitted on plain HTTP")
	}

	w := serveWithSecurity(opt, func(req *http.Request) {
		req.Header.Set("X-Forwarded-Proto", "https")
	})
	got := w.Header().Get("Strict-Transport-Security")
	if !strings.Contains(got, "max-age=3600") {
		t.Errorf("Strict-Transport-Security = %q", got)
	}
}

func TestSecurityHeaders_ExposesRequestID(t *testing.T) {
	w := serveWithSecurity(SecurityOptions{}, nil)
	if got := w.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, "X-Request-ID") {
		t.Errorf("Access-Control-Expose-Headers = %q", got)
	}
}
