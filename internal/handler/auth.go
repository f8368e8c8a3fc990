package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careerlane/jobportal/config"
	"github.com/careerlane/jobportal/internal/constants"
	"github.com/careerlane/jobportal/internal/dto"
	apperrors "github.com/careerlane/jobportal/internal/errors"
	"github.com/careerlane/jobportal/internal/middleware"
	"github.com/careerlane/jobportal/internal/service"
)

// AuthHandler serves registration, login, token refresh and logout
type AuthHandler struct {
	users service.UserService
	jwt   config.JWTConfig
}

func NewAuthHandler(users service.UserService, jwt config.JWTConfig) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

// Register creates a new account
// POST /api/v1/user/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}

	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, user, "User registered successfully")
}

// Login authenticates a user and issues a token pair
// POST /api/v1/user/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}

	session, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setTokenCookies(c, session.AccessToken, session.RefreshToken)
	respond(c, http.StatusOK, session, "Logged in successfully")
}

// Refresh rotates the refresh token and issues a new pair. The token is
// read from the body first, the cookie second.
// POST /api/v1/user/refresh-token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	_ = c.ShouldBindJSON(&req)

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		refreshToken, _ = c.Cookie(constants.CookieRefreshToken)
	}
	if refreshToken == "" {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	pair, err := h.users.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setTokenCookies(c, pair.AccessToken, pair.RefreshToken)
	respond(c, http.StatusOK, pair, "Token refreshed successfully")
}

// Logout revokes every refresh session and clears the auth cookies
// POST /api/v1/user/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.users.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	h.clearTokenCookies(c)
	respond(c, http.StatusOK, nil, "Logged out successfully")
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie(constants.CookieAccessToken, accessToken,
		int(h.jwt.AccessExpiry/time.Second), "/", "", true, true)
	c.SetCookie(constants.CookieRefreshToken, refreshToken,
		int(h.jwt.RefreshExpiry/time.Second), "/", "", true, true)
}

func (h *AuthHandler) clearTokenCookies(c *gin.Context) {
	c.SetCookie(constants.CookieAccessToken, "", -1, "/", "", true, true)
	c.SetCookie(constants.CookieRefreshToken, "", -1, "/", "", true, true)
}
