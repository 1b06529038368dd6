package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	echo "github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type memCounter struct {
	mu   sync.Mutex
	hits map[string]int64
	err  error
}

func (m *memCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hits == nil {
		m.hits = map[string]int64{}
	}
	m.hits[key]++
	return m.hits[key], nil
}

func serve(mw echo.MiddlewareFunc, ip string) *httptest.ResponseRecorder {
	e := echo.New()
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	req := httptest.NewRequest(http.MethodGet, "/v1/summary", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	fixed := time.Unix(1_700_000_000, 0)
	mw := RateLimitMiddleware(RateLimitConfig{
		Counter:        &memCounter{},
		RPS:            2,
		RetryAfterHint: true,
		Now:            func() time.Time { return fixed },
	})

	assert.Equal(t, http.StatusOK, serve(mw, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, serve(mw, "10.0.0.1").Code)

	rec := serve(mw, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// separate client, separate window key
	assert.Equal(t, http.StatusOK, serve(mw, "10.0.0.2").Code)
}

func TestRateLimitDisabledOrFailing(t *testing.T) {
	off := RateLimitMiddleware(RateLimitConfig{Counter: &memCounter{}, RPS: 0})
	noRedis := RateLimitMiddleware(RateLimitConfig{RPS: 1})
	failing := RateLimitMiddleware(RateLimitConfig{Counter: &memCounter{err: errors.New("down")}, RPS: 1})

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(off, "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, serve(noRedis, "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, serve(failing, "10.0.0.1").Code)
	}
}
