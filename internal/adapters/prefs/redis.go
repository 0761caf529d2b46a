package prefs

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/randomtoy/klondike-go/internal/domain"
	"github.com/randomtoy/klondike-go/internal/ports"
)

// DefaultRedisKey is where the draw count lives when no key is configured.
const DefaultRedisKey = "klondike:prefs:draw_count"

// RedisStore keeps the draw count under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	key := opts.Key
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) DrawCount(ctx context.Context) (domain.DrawCount, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ports.ErrNoPreference
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	n, err := domain.ParseDrawCount(v)
	if err != nil {
		return 0, fmt.Errorf("redis key %s: %w", s.key, err)
	}
	return n, nil
}

func (s *RedisStore) SetDrawCount(ctx context.Context, n domain.DrawCount) error {
	if !n.Valid() {
		return domain.ErrInvalidDrawCount
	}
	if err := s.client.Set(ctx, s.key, strconv.Itoa(int(n)), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
