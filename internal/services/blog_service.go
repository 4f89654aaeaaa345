package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/titoscorner/backend/internal/cache"
	"github.com/titoscorner/backend/internal/models"
)

const blogResource = "blogs"

// ErrBlogNotFound indicates the requested blog does not exist.
var ErrBlogNotFound = errors.New("blog service: blog not found")

// BlogService manages CRUD operations for blog articles, serving reads
// through the cache and invalidating it after mutations.
type BlogService struct {
	db    *gorm.DB
	cache *cache.Manager
}

// NewBlogService constructs a blog service once a database handle is supplied.
func NewBlogService(db *gorm.DB, cacheMgr *cache.Manager) (*BlogService, error) {
	if db == nil {
		return nil, errors.New("blog service: db is required")
	}
	return &BlogService{db: db, cache: cacheMgr}, nil
}

// CreateBlogInput captures required fields when publishing a blog.
type CreateBlogInput struct {
	Headline    string
	Description string
	Author      string
}

// UpdateBlogInput describes mutable blog fields. A nil pointer indicates no change.
type UpdateBlogInput struct {
	Headline    *string
	Description *string
	Author      *string
}

// List retrieves one page of blogs, newest first.
func (s *BlogService) List(ctx context.Context, req cache.PageRequest) (cache.PageResult[models.Blog], error) {
	ctx = ensuredContext(ctx)
	req = normalizePage(req, DefaultListLimit)

	return cache.FetchList(ctx, s.cache, blogResource, req, func(ctx context.Context, offset, limit int) ([]models.Blog, int64, error) {
		var total int64
		if err := s.db.WithContext(ctx).Model(&models.Blog{}).Count(&total).Error; err != nil {
			return nil, 0, err
		}

		var rows []models.Blog
		if err := s.db.WithContext(ctx).
			Order("created_at DESC").
			Offset(offset).Limit(limit).
			Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		return rows, total, nil
	})
}

// Get returns a single blog by id.
func (s *BlogService) Get(ctx context.Context, id string) (models.Blog, error) {
	ctx = ensuredContext(ctx)

	return cache.FetchOne(ctx, s.cache, blogResource, id, func(ctx context.Context) (models.Blog, error) {
		var blog models.Blog
		if err := s.db.WithContext(ctx).First(&blog, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Blog{}, ErrBlogNotFound
			}
			return models.Blog{}, err
		}
		return blog, nil
	})
}

// Create persists a new blog and invalidates cached listings.
func (s *BlogService) Create(ctx context.Context, input CreateBlogInput) (models.Blog, error) {
	ctx = ensuredContext(ctx)

	blog := models.Blog{
		Headline:    strings.TrimSpace(input.Headline),
		Description: strings.TrimSpace(input.Description),
		Author:      strings.TrimSpace(input.Author),
	}

	if err := s.db.WithContext(ctx).Create(&blog).Error; err != nil {
		return models.Blog{}, err
	}

	s.cache.Invalidate(ctx, blogResource, "")
	return blog, nil
}

// Update applies the non-nil fields and invalidates cached state for the record.
func (s *BlogService) Update(ctx context.Context, id string, input UpdateBlogInput) (models.Blog, error) {
	ctx = ensuredContext(ctx)

	var blog models.Blog
	if err := s.db.WithContext(ctx).First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Blog{}, ErrBlogNotFound
		}
		return models.Blog{}, err
	}

	if input.Headline != nil {
		blog.Headline = strings.TrimSpace(*input.Headline)
	}
	if input.Description != nil {
		blog.Description = strings.TrimSpace(*input.Description)
	}
	if input.Author != nil {
		blog.Author = strings.TrimSpace(*input.Author)
	}

	if err := s.db.WithContext(ctx).Save(&blog).Error; err != nil {
		return models.Blog{}, err
	}

	s.cache.Invalidate(ctx, blogResource, id)
	return blog, nil
}

// Delete removes a blog. Deleting an unknown id reports not found.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	ctx = ensuredContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.Blog{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBlogNotFound
	}

	s.cache.Invalidate(ctx, blogResource, id)
	return nil
}
