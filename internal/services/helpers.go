package services

import (
	"context"

	"github.com/titoscorner/backend/internal/cache"
)

// Default page sizes per resource family. Recipes ship a denser grid on the
// storefront and use a smaller page.
const (
	DefaultListLimit = 10
	RecipeListLimit  = 6
)

func ensuredContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// normalizePage clamps a page request to valid values, filling in the
// per-resource default limit.
func normalizePage(req cache.PageRequest, defaultLimit int) cache.PageRequest {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultLimit
	}
	return req
}
