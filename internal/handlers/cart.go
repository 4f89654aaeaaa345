package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/titoscorner/backend/internal/services"
	apperrors "github.com/titoscorner/backend/pkg/errors"
	"github.com/titoscorner/backend/pkg/response"
)

// CartHandler exposes cart item CRUD over HTTP. All routes require an
// authenticated user.
type CartHandler struct {
	svc *services.CartService
}

func NewCartHandler(svc *services.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

type createCartItemRequest struct {
	Cover string `json:"cover" validate:"required,url"`
	Title string `json:"title" validate:"required,max=200"`
	Price string `json:"price" validate:"required"`
}

type updateCartItemRequest struct {
	Cover *string `json:"cover" validate:"omitempty,url"`
	Title *string `json:"title" validate:"omitempty,max=200"`
	Price *string `json:"price"`
}

// List handles GET /api/cart.
func (h *CartHandler) List(c *gin.Context) {
	result, err := h.svc.List(requestContext(c), pageRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"items": result.Items}, paginationInfo(result.Pagination))
}

// Get handles GET /api/cart/find/:id.
func (h *CartHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"item": item})
}

// Create handles POST /api/cart/post.
func (h *CartHandler) Create(c *gin.Context) {
	var req createCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.svc.Create(requestContext(c), services.CreateCartItemInput{
		Cover: req.Cover,
		Title: req.Title,
		Price: req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

// Update handles PUT /api/cart/update/:id.
func (h *CartHandler) Update(c *gin.Context) {
	var req updateCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.svc.Update(requestContext(c), c.Param("id"), services.UpdateCartItemInput{
		Cover: req.Cover,
		Title: req.Title,
		Price: req.Price,
	})
	if err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"item": item})
}

// Delete handles DELETE /api/cart/delete/:id.
func (h *CartHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(requestContext(c), id); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}
