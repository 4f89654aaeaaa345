package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/titoscorner/backend/internal/cache"
	"github.com/titoscorner/backend/internal/models"
)

const ebookResource = "ebooks"

// ErrEbookNotFound indicates the requested ebook does not exist.
var ErrEbookNotFound = errors.New("ebook service: ebook not found")

// EbookService manages CRUD operations for the ebook catalogue.
type EbookService struct {
	db    *gorm.DB
	cache *cache.Manager
}

// NewEbookService constructs an ebook service once a database handle is supplied.
func NewEbookService(db *gorm.DB, cacheMgr *cache.Manager) (*EbookService, error) {
	if db == nil {
		return nil, errors.New("ebook service: db is required")
	}
	return &EbookService{db: db, cache: cacheMgr}, nil
}

// CreateEbookInput captures required fields when uploading an ebook.
type CreateEbookInput struct {
	ImageURL    string
	Title       string
	Description string
	Price       string
	Pages       string
	Preview     string
	IsPaid      bool
}

// UpdateEbookInput describes mutable ebook fields. A nil pointer indicates no change.
type UpdateEbookInput struct {
	ImageURL    *string
	Title       *string
	Description *string
	Price       *string
	Pages       *string
	Preview     *string
	IsPaid      *bool
}

// List retrieves one page of ebooks, newest first.
func (s *EbookService) List(ctx context.Context, req cache.PageRequest) (cache.PageResult[models.Ebook], error) {
	ctx = ensuredContext(ctx)
	req = normalizePage(req, DefaultListLimit)

	return cache.FetchList(ctx, s.cache, ebookResource, req, func(ctx context.Context, offset, limit int) ([]models.Ebook, int64, error) {
		var total int64
		if err := s.db.WithContext(ctx).Model(&models.Ebook{}).Count(&total).Error; err != nil {
			return nil, 0, err
		}

		var rows []models.Ebook
		if err := s.db.WithContext(ctx).
			Order("created_at DESC").
			Offset(offset).Limit(limit).
			Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		return rows, total, nil
	})
}

// Get returns a single ebook by id.
func (s *EbookService) Get(ctx context.Context, id string) (models.Ebook, error) {
	ctx = ensuredContext(ctx)

	return cache.FetchOne(ctx, s.cache, ebookResource, id, func(ctx context.Context) (models.Ebook, error) {
		var ebook models.Ebook
		if err := s.db.WithContext(ctx).First(&ebook, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Ebook{}, ErrEbookNotFound
			}
			return models.Ebook{}, err
		}
		return ebook, nil
	})
}

// Create persists a new ebook and invalidates cached listings.
func (s *EbookService) Create(ctx context.Context, input CreateEbookInput) (models.Ebook, error) {
	ctx = ensuredContext(ctx)

	ebook := models.Ebook{
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Price:       strings.TrimSpace(input.Price),
		Pages:       strings.TrimSpace(input.Pages),
		Preview:     input.Preview,
		IsPaid:      input.IsPaid,
	}

	if err := s.db.WithContext(ctx).Create(&ebook).Error; err != nil {
		return models.Ebook{}, err
	}

	s.cache.Invalidate(ctx, ebookResource, "")
	return ebook, nil
}

// Update applies the non-nil fields and invalidates cached state for the record.
func (s *EbookService) Update(ctx context.Context, id string, input UpdateEbookInput) (models.Ebook, error) {
	ctx = ensuredContext(ctx)

	var ebook models.Ebook
	if err := s.db.WithContext(ctx).First(&ebook, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Ebook{}, ErrEbookNotFound
		}
		return models.Ebook{}, err
	}

	if input.ImageURL != nil {
		ebook.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Title != nil {
		ebook.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		ebook.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		ebook.Price = strings.TrimSpace(*input.Price)
	}
	if input.Pages != nil {
		ebook.Pages = strings.TrimSpace(*input.Pages)
	}
	if input.Preview != nil {
		ebook.Preview = *input.Preview
	}
	if input.IsPaid != nil {
		ebook.IsPaid = *input.IsPaid
	}

	if err := s.db.WithContext(ctx).Save(&ebook).Error; err != nil {
		return models.Ebook{}, err
	}

	s.cache.Invalidate(ctx, ebookResource, id)
	return ebook, nil
}

// Delete removes an ebook. Deleting an unknown id reports not found.
func (s *EbookService) Delete(ctx context.Context, id string) error {
	ctx = ensuredContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.Ebook{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEbookNotFound
	}

	s.cache.Invalidate(ctx, ebookResource, id)
	return nil
}
