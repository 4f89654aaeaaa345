package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/titoscorner/backend/internal/cache"
	"github.com/titoscorner/backend/pkg/response"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// pageRequest extracts paging parameters; services apply per-resource defaults.
func pageRequest(c *gin.Context) cache.PageRequest {
	return cache.PageRequest{
		Page:  parseIntQuery(c, "page", 0),
		Limit: parseIntQuery(c, "limit", 0),
	}
}

func paginationInfo(p cache.Pagination) *response.Pagination {
	return &response.Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}
