package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/titoscorner/backend/internal/cache"
)

// testCacheStore is an in-process cache.Store used to observe read-through
// behaviour without a running Redis.
type testCacheStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newTestCacheStore() *testCacheStore {
	return &testCacheStore{entries: map[string][]byte{}}
}

func (s *testCacheStore) IncrementWithTTL(_ context.Context, _ string, window time.Duration) (int64, time.Duration, error) {
	return 1, window, nil
}

func (s *testCacheStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append([]byte(nil), value...)
	return nil
}

func (s *testCacheStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *testCacheStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

func (s *testCacheStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func newTestCache(t *testing.T) (*cache.Manager, *testCacheStore) {
	t.Helper()
	store := newTestCacheStore()
	return cache.NewManager(store), store
}

func strptr(v string) *string { return &v }

func boolptr(v bool) *bool { return &v }
