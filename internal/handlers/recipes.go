package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/titoscorner/backend/internal/services"
	apperrors "github.com/titoscorner/backend/pkg/errors"
	"github.com/titoscorner/backend/pkg/response"
)

// RecipeHandler exposes recipe CRUD over HTTP.
type RecipeHandler struct {
	svc *services.RecipeService
}

func NewRecipeHandler(svc *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{svc: svc}
}

type createRecipeRequest struct {
	ImageURL        string `json:"image_url" validate:"required,url"`
	BackgroundStory string `json:"backgroundstory" validate:"required"`
	Ingredients     string `json:"ingredients" validate:"required"`
	Steps           string `json:"steps" validate:"required"`
}

type updateRecipeRequest struct {
	ImageURL        *string `json:"image_url" validate:"omitempty,url"`
	BackgroundStory *string `json:"backgroundstory"`
	Ingredients     *string `json:"ingredients"`
	Steps           *string `json:"steps"`
}

// List handles GET /api/recipes.
func (h *RecipeHandler) List(c *gin.Context) {
	result, err := h.svc.List(requestContext(c), pageRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"recipes": result.Items}, paginationInfo(result.Pagination))
}

// Get handles GET /api/recipes/find/:id.
func (h *RecipeHandler) Get(c *gin.Context) {
	recipe, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipe": recipe})
}

// Create handles POST /api/recipes/upload.
func (h *RecipeHandler) Create(c *gin.Context) {
	var req createRecipeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	recipe, err := h.svc.Create(requestContext(c), services.CreateRecipeInput{
		ImageURL:        req.ImageURL,
		BackgroundStory: req.BackgroundStory,
		Ingredients:     req.Ingredients,
		Steps:           req.Steps,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"recipe": recipe})
}

// Update handles PUT /api/recipes/update/:id.
func (h *RecipeHandler) Update(c *gin.Context) {
	var req updateRecipeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	recipe, err := h.svc.Update(requestContext(c), c.Param("id"), services.UpdateRecipeInput{
		ImageURL:        req.ImageURL,
		BackgroundStory: req.BackgroundStory,
		Ingredients:     req.Ingredients,
		Steps:           req.Steps,
	})
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipe": recipe})
}

// Delete handles DELETE /api/recipes/delete/:id.
func (h *RecipeHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(requestContext(c), id); err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}
