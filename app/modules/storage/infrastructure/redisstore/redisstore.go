package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/esportivo/app/modules/storage"
	"github.com/redis/go-redis/v9"
)

// commands is the subset of redis.Cmdable the store needs.
type commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Impl stores entries as plain redis strings under a common prefix.
type Impl struct {
	client commands
	prefix string
	close  func() error
}

// New wraps an existing client.
func New(client commands, prefix string) *Impl {
	return &Impl{client: client, prefix: prefix}
}

// Options configures Open.
type Options struct {
	URL    string
	Prefix string
}

// Open parses a redis:// URL, connects and pings the server.
func Open(ctx context.Context, opts Options) (*Impl, error) {
	parsed, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(parsed)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return &Impl{client: client, prefix: opts.Prefix, close: client.Close}, nil
}

func (s *Impl) key(key string) string {
	return s.prefix + key
}

// Get implements storage.Backend.
func (s *Impl) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, nil
}

// Set implements storage.Backend. Entries never expire.
func (s *Impl) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

// Delete implements storage.Backend.
func (s *Impl) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Close closes the client opened by Open.
func (s *Impl) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
