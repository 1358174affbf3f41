package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisHashKey       = "careops:console:session"
	redisChangeChannel = "careops:console:session:changed"
)

// RedisStorage keeps session values in a Redis hash and publishes a change
// notification so other console instances can republish state.
type RedisStorage struct {
	rdb *redis.Client
}

// NewRedisStorage verifies connectivity and returns the storage.
func NewRedisStorage(ctx context.Context, opts *redis.Options) (*RedisStorage, error) {
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStorage{rdb: rdb}, nil
}

func (r *RedisStorage) Load() (map[string]string, error) {
	values, err := r.rdb.HGetAll(context.Background(), redisHashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("load session hash: %w", err)
	}
	return values, nil
}

func (r *RedisStorage) Store(values map[string]string) error {
	ctx := context.Background()
	sets := map[string]string{}
	dels := []string{}
	for k, v := range values {
		if v == "" {
			dels = append(dels, k)
			continue
		}
		sets[k] = v
	}
	pipe := r.rdb.TxPipeline()
	if len(sets) > 0 {
		pipe.HSet(ctx, redisHashKey, sets)
	}
	if len(dels) > 0 {
		pipe.HDel(ctx, redisHashKey, dels...)
	}
	pipe.Publish(ctx, redisChangeChannel, "changed")
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session hash: %w", err)
	}
	return nil
}

func (r *RedisStorage) Watch(onChange func()) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := r.rdb.Subscribe(ctx, redisChangeChannel)
	if _, err := sub.Receive(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe to session channel: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				onChange()
			}
		}
	}()

	return func() {
		cancel()
		_ = sub.Close()
	}, nil
}

func (r *RedisStorage) Close() error {
	return r.rdb.Close()
}
