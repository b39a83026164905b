package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/manpreet1462/bookit/internal/config"
)

func testRateConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       3,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            time.Minute,
		KeyStrategy:    "ip",
		Prefix:         "test:rl",
	}
}

func serveLimited(cfg config.RateLimitConfig, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	e.POST("/v1/checkout/prepare", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, mw)
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout/prepare", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func anyArgs(expected, actual []interface{}) error { return nil }

func TestTokenBucketAllows(t *testing.T) {
	cfg := testRateConfig()
	db, mock := redismock.NewClientMock()
	mock.CustomMatch(anyArgs).ExpectEvalSha(tokenBucket.Hash(), []string{"test:rl:ip:10.0.0.7"}, 0, 0, 0, 0, 0).
		SetVal([]interface{}{int64(1), int64(2), int64(0)})

	rec := serveLimited(cfg, NewTokenBucket(cfg, db))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenBucketBlocks(t *testing.T) {
	cfg := testRateConfig()
	db, mock := redismock.NewClientMock()
	mock.CustomMatch(anyArgs).ExpectEvalSha(tokenBucket.Hash(), []string{"test:rl:ip:10.0.0.7"}, 0, 0, 0, 0, 0).
		SetVal([]interface{}{int64(0), int64(0), int64(1500)})

	rec := serveLimited(cfg, NewTokenBucket(cfg, db))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "too_many_requests")
}

func TestTokenBucketFailsOpen(t *testing.T) {
	cfg := testRateConfig()
	db, mock := redismock.NewClientMock()
	mock.CustomMatch(anyArgs).ExpectEvalSha(tokenBucket.Hash(), []string{"test:rl:ip:10.0.0.7"}, 0, 0, 0, 0, 0).
		SetErr(errors.New("connection reset"))

	rec := serveLimited(cfg, NewTokenBucket(cfg, db))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateKeyStrategies(t *testing.T) {
	cfg := testRateConfig()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/bookings")

	cfg.KeyStrategy = "session"
	assert.Equal(t, "test:rl:session:anon", rateKey(cfg, c))

	c.Set(sessionIDKey, "sid-1")
	cfg.KeyStrategy = "ip_session_route"
	assert.Equal(t, "test:rl:ip:10.0.0.7:session:sid-1:route:POST /v1/bookings", rateKey(cfg, c))
}
