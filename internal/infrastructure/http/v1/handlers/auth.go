package handlers

import (
	"github.com/gin-gonic/gin"

	"stockd/internal/domain/auth"
	"stockd/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves login and registration.
type AuthHandler struct {
	BaseHandler

	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates a user and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        toUserResponse(user),
	})
}

// Register creates a user account. Admin only; the router guards it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(),
		req.Username, req.Email, req.Password, req.Roles...)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, user.ID.String())
}

func toUserResponse(u *auth.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Roles:    u.Roles,
		Active:   u.Active,
	}
}
