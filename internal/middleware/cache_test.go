package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manpreet1462/bookit/internal/config"
)

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          15 * time.Second,
		KeyStrategy:  "route_query",
		Prefix:       "test:catalog",
		MaxBodyBytes: 1 << 20,
	}
}

func keyFor(t *testing.T, cfg config.CacheConfig, target string) string {
	t.Helper()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
	c.SetPath("/v1/experiences")
	return cacheKey(cfg, c)
}

func TestCacheKeySortsQuery(t *testing.T) {
	cfg := testCacheConfig()
	assert.Equal(t, keyFor(t, cfg, "/v1/experiences?q=a&x=1"), keyFor(t, cfg, "/v1/experiences?x=1&q=a"))
	assert.NotEqual(t, keyFor(t, cfg, "/v1/experiences?q=a"), keyFor(t, cfg, "/v1/experiences?q=b"))

	cfg.KeyStrategy = "route"
	assert.Equal(t, keyFor(t, cfg, "/v1/experiences?q=a"), keyFor(t, cfg, "/v1/experiences?q=b"))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`[]`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, got)
	assert.Equal(t, `[]`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 0})
	assert.False(t, ok)
}

func TestRedisCacheHit(t *testing.T) {
	cfg := testCacheConfig()
	db, mock := redismock.NewClientMock()
	payload, err := encodePayload(http.StatusOK, http.Header{
		"Content-Type": {"application/json"},
		"X-Request-Id": {"req-that-filled-the-entry"},
	}, []byte(`[{"_id":"1"}]`))
	require.NoError(t, err)
	mock.ExpectGet(keyFor(t, cfg, "/v1/experiences?q=kay")).SetVal(string(payload))

	e := echo.New()
	calls := 0
	e.GET("/v1/experiences", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, []string{})
	}, NewRedisCache(cfg, db))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/experiences?q=kay", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, `[{"_id":"1"}]`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Values(echo.HeaderXRequestID))
	assert.Zero(t, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheMissStores(t *testing.T) {
	cfg := testCacheConfig()
	db, mock := redismock.NewClientMock()
	key := keyFor(t, cfg, "/v1/experiences")
	mock.ExpectGet(key).RedisNil()
	mock.CustomMatch(func(expected, actual []interface{}) error { return nil }).
		ExpectSetEx(key, "", cfg.TTL).SetVal("OK")

	e := echo.New()
	e.GET("/v1/experiences", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{})
	}, NewRedisCache(cfg, db))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/experiences", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheSkipsErrors(t *testing.T) {
	cfg := testCacheConfig()
	db, mock := redismock.NewClientMock()
	mock.ExpectGet(keyFor(t, cfg, "/v1/experiences")).RedisNil()

	e := echo.New()
	e.GET("/v1/experiences", func(c echo.Context) error {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "upstream_unavailable"})
	}, NewRedisCache(cfg, db))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/experiences", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheDisabledPassesThrough(t *testing.T) {
	cfg := testCacheConfig()
	cfg.Enabled = false
	h := NewRedisCache(cfg, nil)(func(c echo.Context) error { return c.NoContent(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, h(c))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
