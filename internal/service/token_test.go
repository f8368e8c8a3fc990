package service

import (
	"testing"
	"time"

	"github.com/careerlane/jobportal/config"
	apperrors "github.com/careerlane/jobportal/internal/errors"
	"github.com/careerlane/jobportal/internal/model"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:  "access-test-secret",
		RefreshSecret: "refresh-test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	}
}

func testUser() *model.User {
	user := &model.User{
		FullName: "Asha Patel",
		Email:    "asha@example.com",
		Password: "hashed",
		Location: "Pune",
	}
	user.ID = 42
	return user
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	token, err := svc.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.FullName != "Asha Patel" {
		t.Errorf("FullName = %q, want Asha Patel", claims.FullName)
	}
	if claims.Email != "asha@example.com" {
		t.Errorf("Email = %q, want asha@example.com", claims.Email)
	}
	if claims.Location != "Pune" {
		t.Errorf("Location = %q, want Pune", claims.Location)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	token, expiresAt, err := svc.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiresAt = %v, want future time", expiresAt)
	}

	claims, err := svc.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("VerifyRefreshToken returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
}

func TestRefreshTokensAreUnique(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	first, _, err := svc.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}
	second, _, err := svc.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}

	if first == second {
		t.Error("two refresh tokens for the same user are identical")
	}
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	accessToken, err := svc.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	// Signed with the access secret, so the refresh verifier must reject it.
	if _, err := svc.VerifyRefreshToken(accessToken); !apperrors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("VerifyRefreshToken(access token) = %v, want INVALID_TOKEN", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiry = -time.Minute
	svc := NewTokenService(cfg)

	token, err := svc.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	if _, err := svc.VerifyAccessToken(token); !apperrors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("VerifyAccessToken(expired) = %v, want TOKEN_EXPIRED", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	token, err := svc.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.VerifyAccessToken(tampered); !apperrors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("VerifyAccessToken(tampered) = %v, want INVALID_TOKEN", err)
	}
}
