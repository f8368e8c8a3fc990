package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/careerlane/jobportal/internal/dto"
	apperrors "github.com/careerlane/jobportal/internal/errors"
	"github.com/careerlane/jobportal/internal/model"
	"github.com/careerlane/jobportal/internal/repository"
	"github.com/careerlane/jobportal/pkg/hashing"
	"github.com/careerlane/jobportal/pkg/logger"
)

// UserService handles account lifecycle and authentication
type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, userID uint) error
	ChangePassword(ctx context.Context, userID uint, req dto.ChangePasswordRequest) error
	UpdateDetails(ctx context.Context, userID uint, req dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type userService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	jwt    TokenService
	hasher *hashing.Hasher
}

// NewUserService creates a new user service
func NewUserService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	jwt TokenService,
	hasher *hashing.Hasher,
) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
		jwt:    jwt,
		hasher: hasher,
	}
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	hashed, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashed,
		Location: req.Location,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.GetLogger().Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
	)

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(ctx, user.Password, req.Password); err != nil {
		logger.LogAuth(user.ID, "login", false)
		return nil, apperrors.ErrInvalidCredentials
	}

	resp, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.LogAuth(user.ID, "login", true)
	return resp, nil
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	claims, err := s.jwt.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	// The stored row is a single-use permit. Losing the race to another
	// rotation means this token was already spent.
	consumed, err := s.tokens.ConsumeByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if !consumed {
		logger.LogAuth(claims.UserID, "refresh", false)
		return nil, apperrors.ErrStaleToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.LogAuth(user.ID, "refresh", true)
	return &dto.RefreshResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}, nil
}

func (s *userService) Logout(ctx context.Context, userID uint) error {
	if err := s.tokens.DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	logger.LogAuth(userID, "logout", true)
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uint, req dto.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(ctx, user.Password, req.OldPassword); err != nil {
		logger.LogAuth(userID, "change_password", false)
		return apperrors.ErrIncorrectPassword
	}

	hashed, err := s.hasher.Hash(ctx, req.NewPassword)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	logger.LogAuth(userID, "change_password", true)
	return nil
}

func (s *userService) UpdateDetails(ctx context.Context, userID uint, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	updates := make(map[string]any)
	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			return nil, apperrors.BadRequest("fullName must not be blank")
		}
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return nil, apperrors.BadRequest("email must not be blank")
		}
		updates["email"] = *req.Email
	}
	if req.Location != nil {
		if strings.TrimSpace(*req.Location) == "" {
			return nil, apperrors.BadRequest("location must not be blank")
		}
		updates["location"] = *req.Location
	}
	if len(updates) == 0 {
		return nil, apperrors.BadRequest("no fields to update")
	}

	if err := s.users.UpdateDetails(ctx, userID, updates); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.GetLogger().Info("User details updated",
		zap.Uint("user_id", userID),
	)

	resp := toUserResponse(user)
	return &resp, nil
}

// issueSession signs a fresh token pair and persists the refresh side.
func (s *userService) issueSession(ctx context.Context, user *model.User) (*dto.LoginResponse, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, expiresAt, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	session := &model.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		User:         toUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Location:  user.Location,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
