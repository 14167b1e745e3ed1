package services

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"soap-storefront/internal/models"
)

const sessionCartIDKey = "cart_id"

// RedisCartBackend keeps the cart JSON in Redis under cart:<uuid>; only the
// uuid lives in the session cookie.
type RedisCartBackend struct {
	client *redis.Client
	store  sessions.Store
	name   string
	ttl    time.Duration
}

func NewRedisCartBackend(client *redis.Client, store sessions.Store, sessionName string, ttl time.Duration) *RedisCartBackend {
	return &RedisCartBackend{client: client, store: store, name: sessionName, ttl: ttl}
}

func cartKey(id string) string {
	return "cart:" + id
}

func (b *RedisCartBackend) Load(w http.ResponseWriter, r *http.Request) (*models.Cart, error) {
	session, err := b.store.Get(r, b.name)
	if err != nil {
		return models.NewCart(), fmt.Errorf("failed to read session: %w", err)
	}

	id, ok := session.Values[sessionCartIDKey].(string)
	if !ok || id == "" {
		return models.NewCart(), nil
	}

	data, err := b.client.Get(r.Context(), cartKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.NewCart(), nil
	}
	if err != nil {
		return models.NewCart(), fmt.Errorf("failed to load cart %s: %w", id, err)
	}

	return decodeCart(data)
}

func (b *RedisCartBackend) Save(w http.ResponseWriter, r *http.Request, cart *models.Cart) error {
	session, err := b.store.Get(r, b.name)
	if err != nil && session == nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	id, ok := session.Values[sessionCartIDKey].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		session.Values[sessionCartIDKey] = id
		if err := session.Save(r, w); err != nil {
			return fmt.Errorf("failed to save cart id: %w", err)
		}
	}

	data, err := encodeCart(cart)
	if err != nil {
		return err
	}

	if err := b.client.Set(r.Context(), cartKey(id), data, b.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart %s: %w", id, err)
	}
	return nil
}
