package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/titoscorner/backend/internal/cache"
	"github.com/titoscorner/backend/internal/models"
)

const recipeResource = "recipes"

// ErrRecipeNotFound indicates the requested recipe does not exist.
var ErrRecipeNotFound = errors.New("recipe service: recipe not found")

// RecipeService manages CRUD operations for recipes.
type RecipeService struct {
	db    *gorm.DB
	cache *cache.Manager
}

// NewRecipeService constructs a recipe service once a database handle is supplied.
func NewRecipeService(db *gorm.DB, cacheMgr *cache.Manager) (*RecipeService, error) {
	if db == nil {
		return nil, errors.New("recipe service: db is required")
	}
	return &RecipeService{db: db, cache: cacheMgr}, nil
}

// CreateRecipeInput captures required fields when uploading a recipe.
type CreateRecipeInput struct {
	ImageURL        string
	BackgroundStory string
	Ingredients     string
	Steps           string
}

// UpdateRecipeInput describes mutable recipe fields. A nil pointer indicates no change.
type UpdateRecipeInput struct {
	ImageURL        *string
	BackgroundStory *string
	Ingredients     *string
	Steps           *string
}

// List retrieves one page of recipes, newest first.
func (s *RecipeService) List(ctx context.Context, req cache.PageRequest) (cache.PageResult[models.Recipe], error) {
	ctx = ensuredContext(ctx)
	req = normalizePage(req, RecipeListLimit)

	return cache.FetchList(ctx, s.cache, recipeResource, req, func(ctx context.Context, offset, limit int) ([]models.Recipe, int64, error) {
		var total int64
		if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Count(&total).Error; err != nil {
			return nil, 0, err
		}

		var rows []models.Recipe
		if err := s.db.WithContext(ctx).
			Order("created_at DESC").
			Offset(offset).Limit(limit).
			Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		return rows, total, nil
	})
}

// Get returns a single recipe by id.
func (s *RecipeService) Get(ctx context.Context, id string) (models.Recipe, error) {
	ctx = ensuredContext(ctx)

	return cache.FetchOne(ctx, s.cache, recipeResource, id, func(ctx context.Context) (models.Recipe, error) {
		var recipe models.Recipe
		if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Recipe{}, ErrRecipeNotFound
			}
			return models.Recipe{}, err
		}
		return recipe, nil
	})
}

// Create persists a new recipe and invalidates cached listings.
func (s *RecipeService) Create(ctx context.Context, input CreateRecipeInput) (models.Recipe, error) {
	ctx = ensuredContext(ctx)

	recipe := models.Recipe{
		ImageURL:        strings.TrimSpace(input.ImageURL),
		BackgroundStory: input.BackgroundStory,
		Ingredients:     input.Ingredients,
		Steps:           input.Steps,
	}

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return models.Recipe{}, err
	}

	s.cache.Invalidate(ctx, recipeResource, "")
	return recipe, nil
}

// Update applies the non-nil fields and invalidates cached state for the record.
func (s *RecipeService) Update(ctx context.Context, id string, input UpdateRecipeInput) (models.Recipe, error) {
	ctx = ensuredContext(ctx)

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Recipe{}, ErrRecipeNotFound
		}
		return models.Recipe{}, err
	}

	if input.ImageURL != nil {
		recipe.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.BackgroundStory != nil {
		recipe.BackgroundStory = *input.BackgroundStory
	}
	if input.Ingredients != nil {
		recipe.Ingredients = *input.Ingredients
	}
	if input.Steps != nil {
		recipe.Steps = *input.Steps
	}

	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return models.Recipe{}, err
	}

	s.cache.Invalidate(ctx, recipeResource, id)
	return recipe, nil
}

// Delete removes a recipe. Deleting an unknown id reports not found.
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	ctx = ensuredContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecipeNotFound
	}

	s.cache.Invalidate(ctx, recipeResource, id)
	return nil
}
