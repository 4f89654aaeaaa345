package cache

import (
	"fmt"
	"strings"
)

// Cache keys follow "<resource>:<kind>:<field>=<value>[...]" with fields in
// canonical order, so the same logical query always maps to the same key and
// two distinct selectors of one resource never collide.

// RecordKey returns the cache key for a single record of a resource.
func RecordKey(resource, id string) string {
	return fmt.Sprintf("%s:id:%s", normalizeResource(resource), strings.TrimSpace(id))
}

// ListKey returns the cache key for one page of a resource listing.
func ListKey(resource string, page, limit int) string {
	return fmt.Sprintf("%s:list:limit=%d:page=%d", normalizeResource(resource), limit, page)
}

// registryKey addresses the per-resource registry of list keys in use,
// consulted during invalidation to enumerate cached page combinations.
func registryKey(resource string) string {
	return fmt.Sprintf("%s:list:registry", normalizeResource(resource))
}

func normalizeResource(resource string) string {
	return strings.ToLower(strings.TrimSpace(resource))
}
