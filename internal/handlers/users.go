package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/titoscorner/backend/internal/auth"
	"github.com/titoscorner/backend/internal/services"
	apperrors "github.com/titoscorner/backend/pkg/errors"
	"github.com/titoscorner/backend/pkg/metrics"
	"github.com/titoscorner/backend/pkg/response"
)

// UserHandler exposes registration, login and account administration.
type UserHandler struct {
	svc *services.UserService
	jwt *auth.JWTService
}

func NewUserHandler(svc *services.UserService, jwt *auth.JWTService) *UserHandler {
	return &UserHandler{svc: svc, jwt: jwt}
}

type registerRequest struct {
	Fullname    string `json:"fullname" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Nationality string `json:"nationality" validate:"max=60"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Fullname    *string `json:"fullname" validate:"omitempty,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Nationality *string `json:"nationality" validate:"omitempty,max=60"`
	Password    *string `json:"password" validate:"omitempty,min=8,max=72"`
	IsAdmin     *bool   `json:"is_admin"`
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Register(requestContext(c), services.RegisterUserInput{
		Fullname:    req.Fullname,
		Email:       req.Email,
		Nationality: req.Nationality,
		Password:    req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.Error(c, apperrors.NewBadRequest("email is already registered"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Authenticate(requestContext(c), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		if errors.Is(err, services.ErrInvalidLogin) {
			response.Error(c, apperrors.ErrInvalidCredentials)
			return
		}
		response.Error(c, err)
		return
	}
	metrics.AuthAttempts.WithLabelValues("success").Inc()

	token, err := h.jwt.GenerateAccessToken(auth.AccessTokenInput{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	result, err := h.svc.List(requestContext(c), pageRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"users": result.Items}, paginationInfo(result.Pagination))
}

// Get handles GET /api/users/find/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Update handles PUT /api/users/update/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Update(requestContext(c), c.Param("id"), services.UpdateUserInput{
		Fullname:    req.Fullname,
		Email:       req.Email,
		Nationality: req.Nationality,
		Password:    req.Password,
		IsAdmin:     req.IsAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			response.Error(c, apperrors.ErrNotFound)
		case errors.Is(err, services.ErrEmailTaken):
			response.Error(c, apperrors.NewBadRequest("email is already registered"))
		default:
			response.Error(c, err)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Delete handles DELETE /api/users/delete/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(requestContext(c), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}
