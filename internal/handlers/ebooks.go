package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/titoscorner/backend/internal/services"
	apperrors "github.com/titoscorner/backend/pkg/errors"
	"github.com/titoscorner/backend/pkg/response"
)

// EbookHandler exposes ebook catalogue CRUD over HTTP.
type EbookHandler struct {
	svc *services.EbookService
}

func NewEbookHandler(svc *services.EbookService) *EbookHandler {
	return &EbookHandler{svc: svc}
}

type createEbookRequest struct {
	ImageURL    string `json:"image_url" validate:"required,url"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Pages       string `json:"pages"`
	Preview     string `json:"preview"`
	IsPaid      bool   `json:"is_paid"`
}

type updateEbookRequest struct {
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Pages       *string `json:"pages"`
	Preview     *string `json:"preview"`
	IsPaid      *bool   `json:"is_paid"`
}

// List handles GET /api/ebooks.
func (h *EbookHandler) List(c *gin.Context) {
	result, err := h.svc.List(requestContext(c), pageRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"ebooks": result.Items}, paginationInfo(result.Pagination))
}

// Get handles GET /api/ebooks/find/:id.
func (h *EbookHandler) Get(c *gin.Context) {
	ebook, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrEbookNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ebook": ebook})
}

// Create handles POST /api/ebooks/upload.
func (h *EbookHandler) Create(c *gin.Context) {
	var req createEbookRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ebook, err := h.svc.Create(requestContext(c), services.CreateEbookInput{
		ImageURL:    req.ImageURL,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Pages:       req.Pages,
		Preview:     req.Preview,
		IsPaid:      req.IsPaid,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"ebook": ebook})
}

// Update handles PUT /api/ebooks/update/:id.
func (h *EbookHandler) Update(c *gin.Context) {
	var req updateEbookRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ebook, err := h.svc.Update(requestContext(c), c.Param("id"), services.UpdateEbookInput{
		ImageURL:    req.ImageURL,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Pages:       req.Pages,
		Preview:     req.Preview,
		IsPaid:      req.IsPaid,
	})
	if err != nil {
		if errors.Is(err, services.ErrEbookNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ebook": ebook})
}

// Delete handles DELETE /api/ebooks/delete/:id.
func (h *EbookHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(requestContext(c), id); err != nil {
		if errors.Is(err, services.ErrEbookNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}
