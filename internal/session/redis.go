package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "owner_session:"

// redisStore persists session bindings in Redis so they survive process
// restarts and are shared across instances. Expiry is handled by the key
// TTL; an expired binding simply reads back as anonymous.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a Redis-backed Store with the given binding TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Bind(ctx context.Context, token, ownerID string) error {
	return s.client.Set(ctx, keyPrefix+token, ownerID, s.ttl).Err()
}

func (s *redisStore) OwnerID(ctx context.Context, token string) (string, error) {
	ownerID, err := s.client.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrAnonymous
	}
	if err != nil {
		return "", err
	}
	return ownerID, nil
}

func (s *redisStore) Clear(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}
