package opstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fileop:"

// RedisStore keeps staged operations in Redis with a bounded TTL.
type RedisStore struct {
	rdb *redis.Client
}

var _ Store = &RedisStore{}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func key(opId string) string {
	return keyPrefix + opId
}

func (s *RedisStore) Store(ctx context.Context, op *StagedOperation, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("marshal staged operation: %w", err)
	}
	return s.rdb.Set(ctx, key(op.OperationId), data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, opId string) (*StagedOperation, error) {
	data, err := s.rdb.Get(ctx, key(opId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var op StagedOperation
	if err := json.Unmarshal(data, &op); err != nil {
		return nil, fmt.Errorf("unmarshal staged operation %s: %w", opId, err)
	}
	return &op, nil
}

func (s *RedisStore) Delete(ctx context.Context, opId string) (bool, error) {
	removed, err := s.rdb.Del(ctx, key(opId)).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

func (s *RedisStore) TTL(ctx context.Context, opId string) (int64, error) {
	ttl, err := s.rdb.TTL(ctx, key(opId)).Result()
	if err != nil {
		return -1, err
	}
	// go-redis returns -2 for a missing key and -1 for no expiry
	if ttl < 0 {
		return -1, nil
	}
	return int64(ttl.Seconds()), nil
}

func (s *RedisStore) Extend(ctx context.Context, opId string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return s.rdb.Expire(ctx, key(opId), ttl).Result()
}

func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
