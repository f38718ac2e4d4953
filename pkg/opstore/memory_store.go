package opstore

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is a process-local Store for development and tests. It ties
// record lifetime to a single instance, so it is not suitable behind a
// load balancer.
type MemoryStore struct {
	cache *cache.Cache
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	c := cache.New(DefaultTTL, time.Minute)
	return &MemoryStore{cache: c}
}

func (s *MemoryStore) Store(_ context.Context, op *StagedOperation, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cp := *op
	s.cache.Set(op.OperationId, &cp, ttl)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, opId string) (*StagedOperation, error) {
	if x, found := s.cache.Get(opId); found {
		cp := *x.(*StagedOperation)
		return &cp, nil
	}
	return nil, nil
}

func (s *MemoryStore) Delete(_ context.Context, opId string) (bool, error) {
	if _, found := s.cache.Get(opId); !found {
		return false, nil
	}
	s.cache.Delete(opId)
	return true, nil
}

func (s *MemoryStore) TTL(_ context.Context, opId string) (int64, error) {
	_, expiry, found := s.cache.GetWithExpiration(opId)
	if !found {
		return -1, nil
	}
	if expiry.IsZero() {
		return -1, nil
	}
	remaining := time.Until(expiry)
	if remaining < 0 {
		return -1, nil
	}
	return int64(remaining.Seconds()), nil
}

func (s *MemoryStore) Extend(_ context.Context, opId string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	x, found := s.cache.Get(opId)
	if !found {
		return false, nil
	}
	s.cache.Set(opId, x, ttl)
	return true, nil
}

func (s *MemoryStore) HealthCheck(_ context.Context) error {
	return nil
}
