package data

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
)

// MemoryKeyValueStore keeps values for the lifetime of the process.
type MemoryKeyValueStore struct {
	cache *cache.Cache
}

func (s *MemoryKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	item, found := s.cache.Get(key)
	if !found {
		return "", false, nil
	}

	value, ok := item.(string)
	if !ok {
		return "", false, fmt.Errorf("MemoryKeyValueStore.Get: unexpected value type %T for key %s", item, key)
	}

	return value, true, nil
}

func (s *MemoryKeyValueStore) Set(ctx context.Context, key, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}

func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}
