package cache

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// The list-key registry tracks which page keys are live per resource so that
// invalidation can enumerate them. Page and limit are encoded into list keys,
// so without the registry a mutation could not cheaply find every cached page
// combination. The registry lives in the cache store itself with the same TTL
// as the entries it indexes; losing it only widens invalidation (record key
// and registry key are always deleted) and staleness stays bounded by TTL.

// registerListKey adds a list key to the resource's registry after a
// successful write-through.
func (m *Manager) registerListKey(ctx context.Context, resource, key string) {
	if m == nil || m.store == nil {
		return
	}

	keys := m.registeredListKeys(ctx, resource)
	for _, existing := range keys {
		if existing == key {
			return
		}
	}
	keys = append(keys, key)

	data, err := json.Marshal(keys)
	if err != nil {
		return
	}
	if err := m.store.Set(ctx, registryKey(resource), data, m.ttl); err != nil {
		m.log.Debug("list key registry update failed", zap.String("resource", resource), zap.Error(err))
	}
}

// registeredListKeys returns the list keys currently recorded for a
// resource. Store errors and decode failures yield an empty slice.
func (m *Manager) registeredListKeys(ctx context.Context, resource string) []string {
	if m == nil || m.store == nil {
		return nil
	}

	data, found, err := m.store.Get(ctx, registryKey(resource))
	if err != nil || !found {
		return nil
	}

	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil
	}
	return keys
}
