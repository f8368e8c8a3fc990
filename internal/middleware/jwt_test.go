package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/careerlane/jobportal/config"
	"github.com/careerlane/jobportal/internal/constants"
	"github.com/careerlane/jobportal/internal/model"
	"github.com/careerlane/jobportal/internal/service"
	"github.com/careerlane/jobportal/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Logger = zap.NewNop()
	logger.Sugar = logger.Logger.Sugar()
	os.Exit(m.Run())
}

func newAuthTestRouter(t *testing.T) (*gin.Engine, service.TokenService) {
	t.Helper()
	tokens := service.NewTokenService(config.JWTConfig{
		AccessSecret:  "access-test-secret",
		RefreshSecret: "refresh-test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})

	r := gin.New()
	r.GET("/protected", NewJWTMiddleware(tokens).RequireAuth(), func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r, tokens
}

func signAccessToken(t *testing.T, tokens service.TokenService) string {
	t.Helper()
	user := &model.User{FullName: "Asha Patel", Email: "asha@example.com"}
	user.ID = 42
	token, err := tokens.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}
	return token
}

func TestRequireAuthBearerHeader(t *testing.T) {
	r, tokens := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+signAccessToken(t, tokens))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthCookie(t *testing.T) {
	r, tokens := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieAccessToken, Value: signAccessToken(t, tokens)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	r, tokens := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, signAccessToken(t, tokens)) // no Bearer prefix
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthMalformedHeaderFallsBackToCookie(t *testing.T) {
	r, tokens := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, "not-a-bearer-header")
	req.AddCookie(&http.Cookie{Name: constants.CookieAccessToken, Value: signAccessToken(t, tokens)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthRejectsRefreshSecret(t *testing.T) {
	r, tokens := newAuthTestRouter(t)

	// A refresh token must never pass access authentication.
	refreshToken, _, err := tokens.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+refreshToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
