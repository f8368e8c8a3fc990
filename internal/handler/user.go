package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerlane/jobportal/internal/dto"
	apperrors "github.com/careerlane/jobportal/internal/errors"
	"github.com/careerlane/jobportal/internal/middleware"
	"github.com/careerlane/jobportal/internal/service"
)

// UserHandler serves authenticated account management
type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ChangePassword verifies the current password and stores a new one
// POST /api/v1/user/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Password changed successfully")
}

// UpdateDetails applies a sparse patch to the caller's profile
// POST /api/v1/user/update-details
func (h *UserHandler) UpdateDetails(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}

	user, err := h.users.UpdateDetails(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, user, "User details updated successfully")
}
