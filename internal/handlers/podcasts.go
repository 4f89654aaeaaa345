package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/titoscorner/backend/internal/services"
	apperrors "github.com/titoscorner/backend/pkg/errors"
	"github.com/titoscorner/backend/pkg/response"
)

// PodcastHandler exposes podcast episode CRUD over HTTP.
type PodcastHandler struct {
	svc *services.PodcastService
}

func NewPodcastHandler(svc *services.PodcastService) *PodcastHandler {
	return &PodcastHandler{svc: svc}
}

type createPodcastRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Producers   []string `json:"producers"`
	AudioURL    string   `json:"audio_url" validate:"required,url"`
}

type updatePodcastRequest struct {
	Title       *string   `json:"title" validate:"omitempty,max=200"`
	Description *string   `json:"description"`
	Producers   *[]string `json:"producers"`
	AudioURL    *string   `json:"audio_url" validate:"omitempty,url"`
}

// List handles GET /api/podcasts.
func (h *PodcastHandler) List(c *gin.Context) {
	result, err := h.svc.List(requestContext(c), pageRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"podcasts": result.Items}, paginationInfo(result.Pagination))
}

// Get handles GET /api/podcasts/find/:id.
func (h *PodcastHandler) Get(c *gin.Context) {
	podcast, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrPodcastNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"podcast": podcast})
}

// Create handles POST /api/podcasts/upload.
func (h *PodcastHandler) Create(c *gin.Context) {
	var req createPodcastRequest
	if !bindAndValidate(c, &req) {
		return
	}

	podcast, err := h.svc.Create(requestContext(c), services.CreatePodcastInput{
		Title:       req.Title,
		Description: req.Description,
		Producers:   req.Producers,
		AudioURL:    req.AudioURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"podcast": podcast})
}

// Update handles PUT /api/podcasts/update/:id.
func (h *PodcastHandler) Update(c *gin.Context) {
	var req updatePodcastRequest
	if !bindAndValidate(c, &req) {
		return
	}

	podcast, err := h.svc.Update(requestContext(c), c.Param("id"), services.UpdatePodcastInput{
		Title:       req.Title,
		Description: req.Description,
		Producers:   req.Producers,
		AudioURL:    req.AudioURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrPodcastNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"podcast": podcast})
}

// Delete handles DELETE /api/podcasts/delete/:id.
func (h *PodcastHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(requestContext(c), id); err != nil {
		if errors.Is(err, services.ErrPodcastNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}
