package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/netmap/pkg/graph"
)

// RedisStore keeps each record as a JSON string under <prefix>topology:<id>
// and indexes ids in the sorted set <prefix>topologies, scored by creation
// time.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	owned  bool
	now    func() time.Time
}

// RedisConfig configures a Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // key prefix, default "netmap:"
}

// NewRedisStore connects to Redis and verifies the connection with a ping,
// retrying while the server is unreachable.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := Retry(ctx, 3, 500*time.Millisecond, func() error {
		return Retryable(client.Ping(ctx).Err())
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	s := NewRedisStoreFromClient(client, cfg.Prefix)
	s.owned = true
	return s, nil
}

// NewRedisStoreFromClient wraps an existing client. Close leaves the
// client open.
func NewRedisStoreFromClient(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "netmap:"
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStore) recordKey(id string) string { return s.prefix + "topology:" + id }
func (s *RedisStore) indexKey() string           { return s.prefix + "topologies" }

func (s *RedisStore) Create(ctx context.Context, name string, ds graph.Dataset) (*Record, error) {
	if err := validateName(name, true); err != nil {
		return nil, err
	}
	rec := newRecord(name, ds, s.now())
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.recordKey(rec.ID), data, 0)
		p.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(rec.CreatedAt.UnixMilli()), Member: rec.ID})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}
	return rec, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	data, err := s.client.Get(ctx, s.recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return decodeRecord(data)
}

func (s *RedisStore) Update(ctx context.Context, id, name string, ds graph.Dataset) (*Record, error) {
	if err := validateName(name, false); err != nil {
		return nil, err
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(rec, name, ds, s.now())
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	ok, err := s.client.SetXX(ctx, s.recordKey(id), data, redis.KeepTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		del = p.Del(ctx, s.recordKey(id))
		p.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]Summary, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	if len(ids) == 0 {
		return []Summary{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.recordKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	out := make([]Summary, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // index entry without a record
		}
		rec, err := decodeRecord([]byte(str))
		if err != nil {
			continue
		}
		out = append(out, rec.Summary())
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *RedisStore) Latest(ctx context.Context) (*Record, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("latest record: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, ids[0])
}

// Close closes the client if the store opened it.
func (s *RedisStore) Close() error {
	if s.owned {
		return s.client.Close()
	}
	return nil
}

func decodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	rec.Dataset = graph.Normalize(rec.Dataset)
	return &rec, nil
}

var _ Store = (*RedisStore)(nil)
