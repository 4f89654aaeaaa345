package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/titoscorner/backend/pkg/logger"
	"github.com/titoscorner/backend/pkg/metrics"
)

// DefaultTTL is applied to every read-through entry unless overridden.
const DefaultTTL = 3600 * time.Second

// Manager implements the read-through caching protocol shared by all
// resource services: hit short-circuit, miss fetch-and-populate, and
// synchronous invalidation after mutations. Cache failures are never fatal
// to reads; they degrade to the primary store.
type Manager struct {
	store Store
	ttl   time.Duration
	log   *zap.Logger
}

// Option customises a Manager.
type Option func(*Manager)

// WithTTL overrides the write-through TTL.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// NewManager constructs a read-through cache manager. A nil store disables
// caching: every read behaves as a miss and invalidation becomes a no-op.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		ttl:   DefaultTTL,
		log:   logger.WithModule("cache"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PageRequest identifies one page of a resource listing.
type PageRequest struct {
	Page  int
	Limit int
}

// Pagination describes the paging metadata attached to every list result.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// PageResult is one page of records plus its paging metadata. Its shape is
// identical whether served from cache or computed fresh from the store.
type PageResult[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// ListLoader fetches one page of records plus the total row count from the
// primary store. offset and limit are precomputed from the page request.
type ListLoader[T any] func(ctx context.Context, offset, limit int) ([]T, int64, error)

// RecordLoader fetches a single record from the primary store.
type RecordLoader[T any] func(ctx context.Context) (T, error)

// TotalPages computes ceil(totalItems/limit), zero when the listing is empty.
func TotalPages(totalItems int64, limit int) int {
	if limit <= 0 || totalItems <= 0 {
		return 0
	}
	return int((totalItems + int64(limit) - 1) / int64(limit))
}

// FetchList serves one page of a resource listing through the cache. On a
// hit the primary store is not touched. On a miss the loader runs, the page
// is assembled and written through, and its key is registered for later
// invalidation.
func FetchList[T any](ctx context.Context, m *Manager, resource string, req PageRequest, load ListLoader[T]) (PageResult[T], error) {
	key := ListKey(resource, req.Page, req.Limit)

	var result PageResult[T]
	if m.lookup(ctx, resource, key, &result) {
		return result, nil
	}

	offset := (req.Page - 1) * req.Limit
	items, total, err := load(ctx, offset, req.Limit)
	if err != nil {
		return PageResult[T]{}, err
	}
	if items == nil {
		items = []T{}
	}

	result = PageResult[T]{
		Items: items,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			TotalItems: total,
			TotalPages: TotalPages(total, req.Limit),
		},
	}

	if m.populate(ctx, key, result) {
		m.registerListKey(ctx, resource, key)
	}

	return result, nil
}

// FetchOne serves a single record through the cache, keyed by id. Loader
// errors (including not-found sentinels) pass through uncached.
func FetchOne[T any](ctx context.Context, m *Manager, resource, id string, load RecordLoader[T]) (T, error) {
	key := RecordKey(resource, id)

	var record T
	if m.lookup(ctx, resource, key, &record) {
		return record, nil
	}

	record, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	m.populate(ctx, key, record)
	return record, nil
}

// Invalidate removes every key that may reflect the pre-mutation state of a
// resource: the record key (when id is known), all registered list keys, and
// the registry itself. It runs synchronously after successful mutations and
// never returns an error; failures are logged and bounded by the entry TTL.
func (m *Manager) Invalidate(ctx context.Context, resource, id string) {
	if m == nil || m.store == nil {
		return
	}

	keys := []string{registryKey(resource)}
	if id != "" {
		keys = append(keys, RecordKey(resource, id))
	}
	keys = append(keys, m.registeredListKeys(ctx, resource)...)

	if err := m.store.Delete(ctx, keys...); err != nil {
		m.log.Warn("cache invalidation failed; stale entries expire with TTL",
			zap.String("resource", resource),
			zap.Error(err),
		)
		return
	}
	metrics.CacheInvalidations.WithLabelValues(normalizeResource(resource)).Inc()
}

// lookup loads and decodes a cached value. Any store error or decode failure
// counts as a miss; undecodable entries are dropped so they cannot wedge the
// key until TTL expiry.
func (m *Manager) lookup(ctx context.Context, resource, key string, dest any) bool {
	if m == nil || m.store == nil {
		return false
	}

	data, found, err := m.store.Get(ctx, key)
	if err != nil {
		m.log.Debug("cache get failed; treating as miss", zap.String("key", key), zap.Error(err))
		metrics.CacheMisses.WithLabelValues(normalizeResource(resource)).Inc()
		return false
	}
	if !found {
		metrics.CacheMisses.WithLabelValues(normalizeResource(resource)).Inc()
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		m.log.Warn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = m.store.Delete(ctx, key)
		metrics.CacheMisses.WithLabelValues(normalizeResource(resource)).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(normalizeResource(resource)).Inc()
	return true
}

// populate writes a freshly computed value through to the cache. Failures
// are logged and ignored; the read has already succeeded.
func (m *Manager) populate(ctx context.Context, key string, value any) bool {
	if m == nil || m.store == nil {
		return false
	}

	data, err := json.Marshal(value)
	if err != nil {
		m.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := m.store.Set(ctx, key, data, m.ttl); err != nil {
		m.log.Debug("cache set failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
