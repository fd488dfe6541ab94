package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCacheMiss = errors.New("cache miss")

type fakeHTTPCache struct {
	entries map[string][]byte
	ttls    map[string]int
}

func newFakeHTTPCache() *fakeHTTPCache {
	return &fakeHTTPCache{entries: map[string][]byte{}, ttls: map[string]int{}}
}

func (c *fakeHTTPCache) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := c.entries[key]; ok {
		return value, nil
	}
	return nil, errCacheMiss
}

func (c *fakeHTTPCache) GetMulti(ctx context.Context, keys []string) (map[string][]byte, error) {
	result := map[string][]byte{}
	for _, key := range keys {
		if value, ok := c.entries[key]; ok {
			result[key] = value
		}
	}
	return result, nil
}

func (c *fakeHTTPCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.entries[key] = value
	c.ttls[key] = expirationSeconds
	return nil
}

func (c *fakeHTTPCache) SetMulti(ctx context.Context, items map[string][]byte, expirationSeconds int) error {
	for key, value := range items {
		c.entries[key] = value
		c.ttls[key] = expirationSeconds
	}
	return nil
}

func (c *fakeHTTPCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *fakeHTTPCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (c *fakeHTTPCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.entries[key]
	return ok, nil
}

func (c *fakeHTTPCache) singleTTL(t *testing.T) int {
	t.Helper()
	require.Len(t, c.ttls, 1)
	for _, ttl := range c.ttls {
		return ttl
	}
	return 0
}

func serveCached(m *CacheMiddleware, handlerHits *int, method, target, authHeader string) *httptest.ResponseRecorder {
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*handlerHits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fresh":true}`))
	}))

	req := httptest.NewRequest(method, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCacheMiddleware_MissThenHit(t *testing.T) {
	cache := newFakeHTTPCache()
	m := NewCacheMiddleware(cache)
	hits := 0

	first := serveCached(m, &hits, http.MethodGet, "/api/cafes?query=espresso", "")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, hits)
	assert.Equal(t, 120, cache.singleTTL(t))

	second := serveCached(m, &hits, http.MethodGet, "/api/cafes?query=espresso", "")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, hits)
	assert.JSONEq(t, `{"fresh":true}`, second.Body.String())
}

func TestCacheMiddleware_QueryStringChangesKey(t *testing.T) {
	cache := newFakeHTTPCache()
	m := NewCacheMiddleware(cache)
	hits := 0

	serveCached(m, &hits, http.MethodGet, "/api/cafes?query=espresso", "")
	serveCached(m, &hits, http.MethodGet, "/api/cafes?query=matcha", "")

	assert.Equal(t, 2, hits)
	assert.Len(t, cache.entries, 2)
}

func TestCacheMiddleware_AuthorizationBypassesCache(t *testing.T) {
	cache := newFakeHTTPCache()
	m := NewCacheMiddleware(cache)
	hits := 0

	rec := serveCached(m, &hits, http.MethodGet, "/api/cafes", "Bearer token")

	assert.Equal(t, 1, hits)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Empty(t, cache.entries)
}

func TestCacheMiddleware_PostNeverCached(t *testing.T) {
	cache := newFakeHTTPCache()
	m := NewCacheMiddleware(cache)
	hits := 0

	serveCached(m, &hits, http.MethodPost, "/api/cafes", "")

	assert.Equal(t, 1, hits)
	assert.Empty(t, cache.entries)
}

func TestCacheMiddleware_UnconfiguredRouteSkipped(t *testing.T) {
	cache := newFakeHTTPCache()
	m := NewCacheMiddleware(cache)
	hits := 0

	serveCached(m, &hits, http.MethodGet, "/api/recommendations", "")

	assert.Equal(t, 1, hits)
	assert.Empty(t, cache.entries)
}

func TestCacheMiddleware_PrefixMatchCoversDynamicRoutes(t *testing.T) {
	cache := newFakeHTTPCache()
	m := NewCacheMiddleware(cache)
	hits := 0

	serveCached(m, &hits, http.MethodGet, "/api/cafes/cafe-1", "")

	assert.Len(t, cache.entries, 1)
	assert.Equal(t, 120, cache.singleTTL(t))
}

func TestCacheMiddleware_ErrorResponsesNotCached(t *testing.T) {
	cache := newFakeHTTPCache()
	m := NewCacheMiddleware(cache)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cafes", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, cache.entries)
}
