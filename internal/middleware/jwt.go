package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/careerlane/jobportal/internal/constants"
	apperrors "github.com/careerlane/jobportal/internal/errors"
	"github.com/careerlane/jobportal/internal/service"
	"github.com/careerlane/jobportal/pkg/logger"
)

// ContextKeyUserID is the gin context key holding the authenticated user id.
const ContextKeyUserID = "user_id"

type JWTMiddleware struct {
	tokens service.TokenService
}

func NewJWTMiddleware(tokens service.TokenService) *JWTMiddleware {
	return &JWTMiddleware{tokens: tokens}
}

// RequireAuth validates the access token and sets the user id in context.
// The token comes from the Authorization header or the accessToken cookie.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			logger.GetLogger().Warn("Missing access token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			abortUnauthorized(c, constants.MsgUnauthorized)
			return
		}

		claims, err := m.tokens.VerifyAccessToken(tokenString)
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired access token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			abortUnauthorized(c, apperrors.GetErrorMessage(err))
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)

		logger.GetLogger().Debug("User authenticated",
			zap.Uint("user_id", claims.UserID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))

		c.Next()
	}
}

// UserID reads the authenticated user id set by RequireAuth.
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func extractToken(c *gin.Context) string {
	// A malformed Authorization header falls through to the cookie; both
	// transports are accepted independently.
	if authHeader := c.GetHeader(constants.HeaderAuthorization); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	cookie, err := c.Cookie(constants.CookieAccessToken)
	if err != nil {
		return ""
	}
	return cookie
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, constants.NewErrorResponse(http.StatusUnauthorized, message))
	c.Abort()
}
