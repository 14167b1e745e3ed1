package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisBackend(t *testing.T) (*RedisCartBackend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCartBackend(client, newTestStore(), testSessionName, time.Hour), mr
}

func TestRedisCartBackend_RoundTrip(t *testing.T) {
	backend, mr := newRedisBackend(t)
	store := NewCartStore(backend)

	rec := httptest.NewRecorder()
	store.Add(rec, httptest.NewRequest(http.MethodPost, "/", nil), soapA, 2)

	req := nextRequest(rec)
	cart, _ := store.Add(httptest.NewRecorder(), req, soapB, 1)
	assert.Equal(t, 1300, cart.GetCartTotal())

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "cart:")
	assert.Equal(t, time.Hour, mr.TTL(keys[0]))

	reloaded := store.Get(httptest.NewRecorder(), nextRequest(rec))
	assert.Equal(t, 3, reloaded.GetCartItemsCount())
}

func TestRedisCartBackend_ExpiredCartIsEmpty(t *testing.T) {
	backend, mr := newRedisBackend(t)
	store := NewCartStore(backend)

	rec := httptest.NewRecorder()
	store.Add(rec, httptest.NewRequest(http.MethodPost, "/", nil), soapA, 1)

	mr.FastForward(2 * time.Hour)

	assert.True(t, store.Get(httptest.NewRecorder(), nextRequest(rec)).IsEmpty())
}

func TestRedisCartBackend_NoCartID(t *testing.T) {
	backend, _ := newRedisBackend(t)

	cart, err := backend.Load(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestRedisCartBackend_ServerDown(t *testing.T) {
	backend, mr := newRedisBackend(t)
	store := NewCartStore(backend)

	rec := httptest.NewRecorder()
	store.Add(rec, httptest.NewRequest(http.MethodPost, "/", nil), soapA, 1)
	mr.Close()

	cart, _ := store.Add(httptest.NewRecorder(), nextRequest(rec), soapB, 1)
	assert.Equal(t, 1, cart.GetCartItemsCount())

	_, err := backend.client.Ping(context.Background()).Result()
	assert.Error(t, err)
}
