package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func hit(h http.Handler, addr string) int {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitPerIP(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1111"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1111"), "burst exhausted")

	// a different client has its own bucket
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:2222"))
}
