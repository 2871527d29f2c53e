package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps snapshots as JSON strings in Redis.
type RedisStore struct {
	client redis.UniversalClient
	keyer  Keyer
	ttl    time.Duration
}

// NewRedisStore connects to the Redis server at url
// (redis://[user:pass@]host:port/db) and pings it.
func NewRedisStore(ctx context.Context, url string, keyer Keyer, ttl time.Duration) (*RedisStore, error) {
	if url == "" {
		url = "redis://localhost:6379/0"
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis store: %w", err)
	}
	client := redis.NewClient(opts)
	if err := RetryWithBackoff(ctx, func() error { return classifyNet(client.Ping(ctx).Err()) }); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis store: ping: %w", err)
	}
	return NewRedisStoreFromClient(client, keyer, ttl), nil
}

// NewRedisStoreFromClient wraps an existing client. The store owns it from
// then on and closes it in Close.
func NewRedisStoreFromClient(client redis.UniversalClient, keyer Keyer, ttl time.Duration) *RedisStore {
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	return &RedisStore{client: client, keyer: keyer, ttl: ttl}
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, name string) (Snapshot, bool, error) {
	key := s.keyer.Key(name)
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, key).Bytes()
		return classifyNet(err)
	})
	if errors.Is(err, redis.Nil) {
		reportLoad(ctx, BackendRedis, key, false)
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	reportLoad(ctx, BackendRedis, key, true)
	return snap, true, nil
}

// Save implements Store. The store TTL becomes the key's expiry.
func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	if err := validName(snap.Name); err != nil {
		return err
	}
	key := s.keyer.Key(snap.Name)
	data, err := json.Marshal(prepare(snap))
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	err = RetryWithBackoff(ctx, func() error {
		return classifyNet(s.client.Set(ctx, key, data, s.ttl).Err())
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	reportSave(ctx, BackendRedis, key, len(snap.Layout))
	return nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	key := s.keyer.Key(name)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// List implements Store. It scans for keys instead of using KEYS so large
// databases are not blocked.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	pattern := s.keyer.Key("*")
	var names []string
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if name, ok := s.keyer.Name(iter.Val()); ok {
			names = append(names, name)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return sortedNames(names), nil
}

// Close implements Store.
func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
