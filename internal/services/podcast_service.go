package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/titoscorner/backend/internal/cache"
	"github.com/titoscorner/backend/internal/models"
)

const podcastResource = "podcasts"

// ErrPodcastNotFound indicates the requested podcast does not exist.
var ErrPodcastNotFound = errors.New("podcast service: podcast not found")

// PodcastService manages CRUD operations for podcast episodes.
type PodcastService struct {
	db    *gorm.DB
	cache *cache.Manager
}

// NewPodcastService constructs a podcast service once a database handle is supplied.
func NewPodcastService(db *gorm.DB, cacheMgr *cache.Manager) (*PodcastService, error) {
	if db == nil {
		return nil, errors.New("podcast service: db is required")
	}
	return &PodcastService{db: db, cache: cacheMgr}, nil
}

// CreatePodcastInput captures required fields when uploading an episode.
type CreatePodcastInput struct {
	Title       string
	Description string
	Producers   []string
	AudioURL    string
}

// UpdatePodcastInput describes mutable podcast fields. A nil pointer indicates no change.
type UpdatePodcastInput struct {
	Title       *string
	Description *string
	Producers   *[]string
	AudioURL    *string
}

// List retrieves one page of podcasts, newest first.
func (s *PodcastService) List(ctx context.Context, req cache.PageRequest) (cache.PageResult[models.Podcast], error) {
	ctx = ensuredContext(ctx)
	req = normalizePage(req, DefaultListLimit)

	return cache.FetchList(ctx, s.cache, podcastResource, req, func(ctx context.Context, offset, limit int) ([]models.Podcast, int64, error) {
		var total int64
		if err := s.db.WithContext(ctx).Model(&models.Podcast{}).Count(&total).Error; err != nil {
			return nil, 0, err
		}

		var rows []models.Podcast
		if err := s.db.WithContext(ctx).
			Order("created_at DESC").
			Offset(offset).Limit(limit).
			Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		return rows, total, nil
	})
}

// Get returns a single podcast by id.
func (s *PodcastService) Get(ctx context.Context, id string) (models.Podcast, error) {
	ctx = ensuredContext(ctx)

	return cache.FetchOne(ctx, s.cache, podcastResource, id, func(ctx context.Context) (models.Podcast, error) {
		var podcast models.Podcast
		if err := s.db.WithContext(ctx).First(&podcast, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Podcast{}, ErrPodcastNotFound
			}
			return models.Podcast{}, err
		}
		return podcast, nil
	})
}

// Create persists a new podcast and invalidates cached listings.
func (s *PodcastService) Create(ctx context.Context, input CreatePodcastInput) (models.Podcast, error) {
	ctx = ensuredContext(ctx)

	podcast := models.Podcast{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Producers:   datatypes.NewJSONSlice(normaliseProducers(input.Producers)),
		AudioURL:    strings.TrimSpace(input.AudioURL),
	}

	if err := s.db.WithContext(ctx).Create(&podcast).Error; err != nil {
		return models.Podcast{}, err
	}

	s.cache.Invalidate(ctx, podcastResource, "")
	return podcast, nil
}

// Update applies the non-nil fields and invalidates cached state for the record.
func (s *PodcastService) Update(ctx context.Context, id string, input UpdatePodcastInput) (models.Podcast, error) {
	ctx = ensuredContext(ctx)

	var podcast models.Podcast
	if err := s.db.WithContext(ctx).First(&podcast, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Podcast{}, ErrPodcastNotFound
		}
		return models.Podcast{}, err
	}

	if input.Title != nil {
		podcast.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		podcast.Description = strings.TrimSpace(*input.Description)
	}
	if input.Producers != nil {
		podcast.Producers = datatypes.NewJSONSlice(normaliseProducers(*input.Producers))
	}
	if input.AudioURL != nil {
		podcast.AudioURL = strings.TrimSpace(*input.AudioURL)
	}

	if err := s.db.WithContext(ctx).Save(&podcast).Error; err != nil {
		return models.Podcast{}, err
	}

	s.cache.Invalidate(ctx, podcastResource, id)
	return podcast, nil
}

// Delete removes a podcast. Deleting an unknown id reports not found.
func (s *PodcastService) Delete(ctx context.Context, id string) error {
	ctx = ensuredContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.Podcast{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPodcastNotFound
	}

	s.cache.Invalidate(ctx, podcastResource, id)
	return nil
}

func normaliseProducers(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}
