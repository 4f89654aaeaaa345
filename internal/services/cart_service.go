package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/titoscorner/backend/internal/cache"
	"github.com/titoscorner/backend/internal/models"
)

const cartResource = "cart"

// ErrCartItemNotFound indicates the requested cart item does not exist.
var ErrCartItemNotFound = errors.New("cart service: item not found")

// CartService manages CRUD operations for cart items.
type CartService struct {
	db    *gorm.DB
	cache *cache.Manager
}

// NewCartService constructs a cart service once a database handle is supplied.
func NewCartService(db *gorm.DB, cacheMgr *cache.Manager) (*CartService, error) {
	if db == nil {
		return nil, errors.New("cart service: db is required")
	}
	return &CartService{db: db, cache: cacheMgr}, nil
}

// CreateCartItemInput captures required fields when adding a cart item.
type CreateCartItemInput struct {
	Cover string
	Title string
	Price string
}

// UpdateCartItemInput describes mutable cart item fields. A nil pointer indicates no change.
type UpdateCartItemInput struct {
	Cover *string
	Title *string
	Price *string
}

// List retrieves one page of cart items, newest first.
func (s *CartService) List(ctx context.Context, req cache.PageRequest) (cache.PageResult[models.CartItem], error) {
	ctx = ensuredContext(ctx)
	req = normalizePage(req, DefaultListLimit)

	return cache.FetchList(ctx, s.cache, cartResource, req, func(ctx context.Context, offset, limit int) ([]models.CartItem, int64, error) {
		var total int64
		if err := s.db.WithContext(ctx).Model(&models.CartItem{}).Count(&total).Error; err != nil {
			return nil, 0, err
		}

		var rows []models.CartItem
		if err := s.db.WithContext(ctx).
			Order("created_at DESC").
			Offset(offset).Limit(limit).
			Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		return rows, total, nil
	})
}

// Get returns a single cart item by id.
func (s *CartService) Get(ctx context.Context, id string) (models.CartItem, error) {
	ctx = ensuredContext(ctx)

	return cache.FetchOne(ctx, s.cache, cartResource, id, func(ctx context.Context) (models.CartItem, error) {
		var item models.CartItem
		if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.CartItem{}, ErrCartItemNotFound
			}
			return models.CartItem{}, err
		}
		return item, nil
	})
}

// Create persists a new cart item and invalidates cached listings.
func (s *CartService) Create(ctx context.Context, input CreateCartItemInput) (models.CartItem, error) {
	ctx = ensuredContext(ctx)

	item := models.CartItem{
		Cover: strings.TrimSpace(input.Cover),
		Title: strings.TrimSpace(input.Title),
		Price: strings.TrimSpace(input.Price),
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return models.CartItem{}, err
	}

	s.cache.Invalidate(ctx, cartResource, "")
	return item, nil
}

// Update applies the non-nil fields and invalidates cached state for the record.
func (s *CartService) Update(ctx context.Context, id string, input UpdateCartItemInput) (models.CartItem, error) {
	ctx = ensuredContext(ctx)

	var item models.CartItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, ErrCartItemNotFound
		}
		return models.CartItem{}, err
	}

	if input.Cover != nil {
		item.Cover = strings.TrimSpace(*input.Cover)
	}
	if input.Title != nil {
		item.Title = strings.TrimSpace(*input.Title)
	}
	if input.Price != nil {
		item.Price = strings.TrimSpace(*input.Price)
	}

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return models.CartItem{}, err
	}

	s.cache.Invalidate(ctx, cartResource, id)
	return item, nil
}

// Delete removes a cart item. Deleting an unknown id reports not found.
func (s *CartService) Delete(ctx context.Context, id string) error {
	ctx = ensuredContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCartItemNotFound
	}

	s.cache.Invalidate(ctx, cartResource, id)
	return nil
}
