package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/titoscorner/backend/internal/services"
	apperrors "github.com/titoscorner/backend/pkg/errors"
	"github.com/titoscorner/backend/pkg/response"
)

// BlogHandler exposes blog CRUD over HTTP.
type BlogHandler struct {
	svc *services.BlogService
}

func NewBlogHandler(svc *services.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

type createBlogRequest struct {
	Headline    string `json:"headline" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Author      string `json:"author" validate:"required,max=100"`
}

type updateBlogRequest struct {
	Headline    *string `json:"headline" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Author      *string `json:"author" validate:"omitempty,max=100"`
}

// List handles GET /api/blogs.
func (h *BlogHandler) List(c *gin.Context) {
	result, err := h.svc.List(requestContext(c), pageRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"blogs": result.Items}, paginationInfo(result.Pagination))
}

// Get handles GET /api/blogs/find/:id.
func (h *BlogHandler) Get(c *gin.Context) {
	blog, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blog": blog})
}

// Create handles POST /api/blogs/post.
func (h *BlogHandler) Create(c *gin.Context) {
	var req createBlogRequest
	if !bindAndValidate(c, &req) {
		return
	}

	blog, err := h.svc.Create(requestContext(c), services.CreateBlogInput{
		Headline:    req.Headline,
		Description: req.Description,
		Author:      req.Author,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"blog": blog})
}

// Update handles PUT /api/blogs/update/:id.
func (h *BlogHandler) Update(c *gin.Context) {
	var req updateBlogRequest
	if !bindAndValidate(c, &req) {
		return
	}

	blog, err := h.svc.Update(requestContext(c), c.Param("id"), services.UpdateBlogInput{
		Headline:    req.Headline,
		Description: req.Description,
		Author:      req.Author,
	})
	if err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blog": blog})
}

// Delete handles DELETE /api/blogs/delete/:id.
func (h *BlogHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(requestContext(c), id); err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}
