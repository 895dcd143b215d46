package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions as JSON values with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption customizes the redis client options.
type RedisOption func(*redis.Options)

// WithPassword sets the redis password.
func WithPassword(password string) RedisOption {
	return func(o *redis.Options) {
		o.Password = password
	}
}

// WithDB selects the redis logical database.
func WithDB(db int) RedisOption {
	return func(o *redis.Options) {
		o.DB = db
	}
}

// NewRedisClient builds a client for addr.
func NewRedisClient(addr string, options ...RedisOption) *redis.Client {
	opts := &redis.Options{
		Addr: addr,
	}
	for _, option := range options {
		option(opts)
	}
	return redis.NewClient(opts)
}

// NewRedisStore creates a RedisStore whose sessions expire after ttl of inactivity.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get loads and decodes the session.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	if s.Cart == nil {
		s.ClearCart()
	}
	return &s, nil
}

// Save encodes the session and resets its TTL.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", s.ID, err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+s.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}
	return nil
}

// Delete removes the session.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}
