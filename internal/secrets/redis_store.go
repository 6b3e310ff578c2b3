package secrets

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore reads secrets from Redis keys. The ref is the key name.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// GetSecret fetches the value stored at ref. A missing key is an error;
// the provider treats it as the store being unable to return a value.
func (s *RedisStore) GetSecret(ctx context.Context, ref string) ([]byte, error) {
	val, err := s.client.Get(ctx, ref).Bytes()
	if err != nil {
		return nil, err
	}
	return val, nil
}
