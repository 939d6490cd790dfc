package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/config"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
)

// maxTxRetries bounds optimistic-lock retries on contended Update calls.
const maxTxRetries = 5

// RedisStore backs the session cache with Redis for kiosk deployments where
// several terminals share one session. Update runs under WATCH so the
// read-modify-write is atomic across terminals.
type RedisStore struct {
	client *redis.Client
	prefix string
	cb     *gobreaker.CircuitBreaker
}

var _ ports.KeyValue = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "cafeteria:session:"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		cb:     config.NewCircuitBreaker("Redis-Session"),
	}
}

func (s *RedisStore) key(k string) string { return s.prefix + k }

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.cb.Execute(func() (interface{}, error) {
		val, err := s.client.Get(ctx, s.key(key)).Result()
		// A missing key is a normal read, not a failure the breaker
		// should count.
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return val, nil
	})
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", ports.ErrKeyNotFound
	}
	return v.(string), nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, s.key(key), value, 0).Err()
	})
	return err
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, full...).Err()
	})
	return err
}

func (s *RedisStore) Update(ctx context.Context, key string, fn func(current string) (string, error)) error {
	full := s.key(key)

	txn := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, full).Result()
		if errors.Is(err, redis.Nil) {
			current = ""
		} else if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, full, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txn, full)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("update %s: too many conflicting writers", key)
}

func (s *RedisStore) Clear(ctx context.Context) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			return nil, nil
		}
		return nil, s.client.Del(ctx, keys...).Err()
	})
	return err
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
