package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Hamzahxou/api-x/internal/domain"
	"github.com/Hamzahxou/api-x/internal/service"
	"github.com/Hamzahxou/api-x/pkg/middleware"
	"github.com/Hamzahxou/api-x/pkg/response"
)

// UserHandler handles user and follow-graph HTTP requests.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Sync handles POST /api/users/sync.
func (h *UserHandler) Sync(c *gin.Context) {
	var req domain.SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	subject := middleware.GetSubject(c)
	user, created, err := h.users.Sync(c.Request.Context(), subject, &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.Conflict(c, "username already taken")
			return
		}
		response.InternalError(c, "failed to sync user")
		return
	}

	msg := "user already exists"
	if created {
		msg = "user created"
	}
	response.Success(c, gin.H{"user": user, "message": msg})
}

// GetMe handles GET /api/users/me.
func (h *UserHandler) GetMe(c *gin.Context) {
	subject := middleware.GetSubject(c)
	user, err := h.users.GetMe(c.Request.Context(), subject)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to get user")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// GetProfile handles GET /api/users/profile/:username.
func (h *UserHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	user, err := h.users.GetProfile(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to get profile")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	subject := middleware.GetSubject(c)
	user, err := h.users.UpdateProfile(c.Request.Context(), subject, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to update profile")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// Follow handles POST /api/users/follow/:targetUserId.
func (h *UserHandler) Follow(c *gin.Context) {
	subject := middleware.GetSubject(c)
	targetUserID := c.Param("targetUserId")

	outcome, err := h.users.Follow(c.Request.Context(), subject, targetUserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			response.BadRequest(c, "users cannot follow themselves")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "user not found")
		default:
			response.InternalError(c, "failed to toggle follow")
		}
		return
	}

	msg := "user unfollowed successfully"
	if outcome.On() {
		msg = "user followed successfully"
	}
	response.Success(c, gin.H{"message": msg})
}
