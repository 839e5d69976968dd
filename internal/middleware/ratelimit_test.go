package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(1, 2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// The burst is 2; the third immediate request is throttled.
	if got := hit("10.0.0.1"); got != http.StatusOK {
		t.Fatalf("first request: %d", got)
	}
	if got := hit("10.0.0.1"); got != http.StatusOK {
		t.Fatalf("second request: %d", got)
	}
	if got := hit("10.0.0.1"); got != http.StatusTooManyRequests {
		t.Fatalf("third request: %d, want 429", got)
	}

	// Buckets are per client address.
	if got := hit("10.0.0.2"); got != http.StatusOK {
		t.Fatalf("other client throttled: %d", got)
	}
}
