package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// memoryStore is a minimal in-process Store used to exercise the manager
// without a running Redis or database.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
	deletes []string
	failing bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: map[string][]byte{}}
}

func (s *memoryStore) IncrementWithTTL(_ context.Context, _ string, window time.Duration) (int64, time.Duration, error) {
	if s.failing {
		return 0, 0, errors.New("store unavailable")
	}
	return 1, window, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if s.failing {
		return errors.New("store unavailable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append([]byte(nil), value...)
	s.sets++
	return nil
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if s.failing {
		return nil, false, errors.New("store unavailable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *memoryStore) Delete(_ context.Context, keys ...string) error {
	if s.failing {
		return errors.New("store unavailable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
		s.deletes = append(s.deletes, key)
	}
	return nil
}

type article struct {
	ID       string `json:"id"`
	Headline string `json:"headline"`
}

func TestFetchListPopulatesAndShortCircuits(t *testing.T) {
	store := newMemoryStore()
	mgr := NewManager(store)
	ctx := context.Background()

	loads := 0
	load := func(_ context.Context, offset, limit int) ([]article, int64, error) {
		loads++
		require.Equal(t, 0, offset)
		require.Equal(t, 10, limit)
		return []article{{ID: "1", Headline: "first"}}, 1, nil
	}

	cold, err := FetchList(ctx, mgr, "blogs", PageRequest{Page: 1, Limit: 10}, load)
	require.NoError(t, err)
	require.Equal(t, 1, loads)
	require.Len(t, cold.Items, 1)
	require.Equal(t, int64(1), cold.Pagination.TotalItems)

	warm, err := FetchList(ctx, mgr, "blogs", PageRequest{Page: 1, Limit: 10}, load)
	require.NoError(t, err)
	require.Equal(t, 1, loads, "warm read must not touch the primary store")
	require.Equal(t, cold, warm, "cached page must be indistinguishable from a fresh one")
}

func TestFetchListPaginationMetadata(t *testing.T) {
	store := newMemoryStore()
	mgr := NewManager(store)
	ctx := context.Background()

	// 12 records, limit 10: page 1 holds 10, page 2 holds 2.
	records := make([]article, 12)
	for i := range records {
		records[i] = article{ID: string(rune('a' + i))}
	}
	load := func(_ context.Context, offset, limit int) ([]article, int64, error) {
		end := offset + limit
		if end > len(records) {
			end = len(records)
		}
		return records[offset:end], int64(len(records)), nil
	}

	page1, err := FetchList(ctx, mgr, "blogs", PageRequest{Page: 1, Limit: 10}, load)
	require.NoError(t, err)
	require.Len(t, page1.Items, 10)
	require.Equal(t, 2, page1.Pagination.TotalPages)

	page2, err := FetchList(ctx, mgr, "blogs", PageRequest{Page: 2, Limit: 10}, load)
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
	require.Equal(t, int64(12), page2.Pagination.TotalItems)
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, TotalPages(0, 10))
	require.Equal(t, 1, TotalPages(1, 10))
	require.Equal(t, 1, TotalPages(10, 10))
	require.Equal(t, 2, TotalPages(11, 10))
	require.Equal(t, 2, TotalPages(12, 10))
	require.Equal(t, 4, TotalPages(20, 6))
}

func TestFetchOneReadThrough(t *testing.T) {
	store := newMemoryStore()
	mgr := NewManager(store)
	ctx := context.Background()

	loads := 0
	load := func(_ context.Context) (article, error) {
		loads++
		return article{ID: "abc123", Headline: "original"}, nil
	}

	first, err := FetchOne(ctx, mgr, "blogs", "abc123", load)
	require.NoError(t, err)
	require.Equal(t, "original", first.Headline)

	second, err := FetchOne(ctx, mgr, "blogs", "abc123", load)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, loads)
}

func TestFetchOneDoesNotCacheLoaderErrors(t *testing.T) {
	store := newMemoryStore()
	mgr := NewManager(store)
	ctx := context.Background()

	sentinel := errors.New("blog not found")
	_, err := FetchOne(ctx, mgr, "blogs", "missing", func(_ context.Context) (article, error) {
		return article{}, sentinel
	})
	require.ErrorIs(t, err, sentinel)
	require.Empty(t, store.entries)
}

func TestInvalidateRemovesRecordAndEveryListPage(t *testing.T) {
	store := newMemoryStore()
	mgr := NewManager(store)
	ctx := context.Background()

	load := func(_ context.Context, offset, limit int) ([]article, int64, error) {
		return []article{{ID: "abc123", Headline: "original"}}, 1, nil
	}

	// Warm several page combinations plus the record itself.
	_, err := FetchList(ctx, mgr, "blogs", PageRequest{Page: 1, Limit: 10}, load)
	require.NoError(t, err)
	_, err = FetchList(ctx, mgr, "blogs", PageRequest{Page: 2, Limit: 10}, load)
	require.NoError(t, err)
	_, err = FetchList(ctx, mgr, "blogs", PageRequest{Page: 1, Limit: 6}, load)
	require.NoError(t, err)
	_, err = FetchOne(ctx, mgr, "blogs", "abc123", func(_ context.Context) (article, error) {
		return article{ID: "abc123", Headline: "original"}, nil
	})
	require.NoError(t, err)

	mgr.Invalidate(ctx, "blogs", "abc123")
	require.Empty(t, store.entries, "invalidation must remove the record key, all list keys, and the registry")

	// A read after invalidation must observe the updated state.
	fresh, err := FetchOne(ctx, mgr, "blogs", "abc123", func(_ context.Context) (article, error) {
		return article{ID: "abc123", Headline: "updated"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "updated", fresh.Headline)
}

func TestInvalidateOnCreateSkipsRecordKey(t *testing.T) {
	store := newMemoryStore()
	mgr := NewManager(store)
	ctx := context.Background()

	_, err := FetchList(ctx, mgr, "blogs", PageRequest{Page: 1, Limit: 10}, func(_ context.Context, _, _ int) ([]article, int64, error) {
		return nil, 0, nil
	})
	require.NoError(t, err)

	mgr.Invalidate(ctx, "blogs", "")
	require.Empty(t, store.entries)
}

func TestUnavailableStoreDegradesToPrimary(t *testing.T) {
	store := newMemoryStore()
	store.failing = true
	mgr := NewManager(store)
	ctx := context.Background()

	record, err := FetchOne(ctx, mgr, "blogs", "abc123", func(_ context.Context) (article, error) {
		return article{ID: "abc123", Headline: "still served"}, nil
	})
	require.NoError(t, err, "cache unavailability must never fail a read")
	require.Equal(t, "still served", record.Headline)

	page, err := FetchList(ctx, mgr, "blogs", PageRequest{Page: 1, Limit: 10}, func(_ context.Context, _, _ int) ([]article, int64, error) {
		return []article{{ID: "abc123"}}, 1, nil
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	// Invalidation against the unreachable store must not panic or error.
	mgr.Invalidate(ctx, "blogs", "abc123")
}

func TestNilStoreDisablesCaching(t *testing.T) {
	mgr := NewManager(nil)
	ctx := context.Background()

	loads := 0
	for i := 0; i < 2; i++ {
		_, err := FetchOne(ctx, mgr, "blogs", "abc123", func(_ context.Context) (article, error) {
			loads++
			return article{ID: "abc123"}, nil
		})
		require.NoError(t, err)
	}
	require.Equal(t, 2, loads)

	mgr.Invalidate(ctx, "blogs", "abc123")
}

func TestLookupDropsUndecodableEntries(t *testing.T) {
	store := newMemoryStore()
	mgr := NewManager(store)
	ctx := context.Background()

	key := RecordKey("blogs", "abc123")
	require.NoError(t, store.Set(ctx, key, []byte("{not json"), time.Hour))

	record, err := FetchOne(ctx, mgr, "blogs", "abc123", func(_ context.Context) (article, error) {
		return article{ID: "abc123", Headline: "reloaded"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "reloaded", record.Headline)
}
