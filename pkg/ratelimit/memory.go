package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type entry struct {
	Count     int
	ResetTime time.Time
}

// MemoryStore keeps counters in-process. Good enough for a single replica.
type MemoryStore struct {
	cache *cache.Cache
	mutex sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	now := time.Now()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if raw, found := s.cache.Get(key); found {
		e := raw.(entry)

		if now.Before(e.ResetTime) {
			e.Count++
			s.cache.Set(key, e, time.Until(e.ResetTime))
			return e.Count, e.ResetTime, nil
		}
	}

	reset := now.Add(window)
	s.cache.Set(key, entry{Count: 1, ResetTime: reset}, window)

	return 1, reset, nil
}
