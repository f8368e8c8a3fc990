package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/careerlane/jobportal/config"
	apperrors "github.com/careerlane/jobportal/internal/errors"
	"github.com/careerlane/jobportal/internal/model"
)

// AccessClaims carries the caller's identity inside an access token so
// handlers can serve identity reads without a database round trip.
type AccessClaims struct {
	UserID   uint   `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Location string `json:"location"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the user id. The jti makes every issued
// refresh token unique even within the same second.
type RefreshClaims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies both token kinds.
type TokenService interface {
	GenerateAccessToken(user *model.User) (string, error)
	GenerateRefreshToken(userID uint) (token string, expiresAt time.Time, err error)
	VerifyAccessToken(token string) (*AccessClaims, error)
	VerifyRefreshToken(token string) (*RefreshClaims, error)
	RefreshExpiry() time.Duration
}

type tokenService struct {
	cfg config.JWTConfig
}

// NewTokenService creates a new token service
func NewTokenService(cfg config.JWTConfig) TokenService {
	return &tokenService{cfg: cfg}
}

func (s *tokenService) GenerateAccessToken(user *model.User) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Location: user.Location,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.AccessSecret))
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return signed, nil
}

func (s *tokenService) GenerateRefreshToken(userID uint) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.RefreshExpiry)
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", time.Time{}, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return signed, expiresAt, nil
}

func (s *tokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(tokenString, claims, s.cfg.AccessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *tokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.parse(tokenString, claims, s.cfg.RefreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *tokenService) RefreshExpiry() time.Duration {
	return s.cfg.RefreshExpiry
}

func (s *tokenService) parse(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		// Expiry is reported separately so clients know a refresh may
		// still succeed.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return apperrors.ErrTokenExpired
		}
		return apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return apperrors.ErrInvalidToken
	}
	return nil
}
