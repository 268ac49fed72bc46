package history

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "qrkit:history"

// RedisStore keeps history in a Redis list, newest at the head.
type RedisStore struct {
	client   redis.UniversalClient
	key      string
	maxItems int
}

// NewRedisStore creates a store on the given list key. An empty key uses
// "qrkit:history".
func NewRedisStore(client redis.UniversalClient, key string, opts ...Option) *RedisStore {
	if key == "" {
		key = defaultRedisKey
	}
	o := newOptions(opts)
	return &RedisStore{client: client, key: key, maxItems: o.maxItems}
}

func (s *RedisStore) Append(ctx context.Context, r Record) error {
	if err := r.validate(); err != nil {
		return err
	}

	value, err := json.Marshal(r)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.key, value)
		pipe.LTrim(ctx, s.key, 0, int64(s.maxItems-1))
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, limit int) ([]Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	values, err := s.client.LRange(ctx, s.key, 0, stop).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	out := make([]Record, 0, len(values))
	for _, v := range values {
		var r Record
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, errors.Join(ErrStoreFailed, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Remove deletes the list element holding id. LREM matches by value, so the
// stored JSON is looked up first.
func (s *RedisStore) Remove(ctx context.Context, id uuid.UUID) error {
	values, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	for _, v := range values {
		var r Record
		if err := json.Unmarshal([]byte(v), &r); err != nil || r.ID != id {
			continue
		}

		n, err := s.client.LRem(ctx, s.key, 1, v).Result()
		if err != nil {
			return errors.Join(ErrStoreFailed, err)
		}
		if n == 0 {
			return ErrRecordNotFound
		}
		return nil
	}
	return ErrRecordNotFound
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
