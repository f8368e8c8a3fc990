package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/careerlane/jobportal/internal/errors"
	"github.com/careerlane/jobportal/internal/model"
)

// TokenRepository handles refresh session persistence
type TokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	// ConsumeByToken atomically deletes the session row for token and
	// reports whether it existed. Two concurrent calls with the same
	// token see exactly one true.
	ConsumeByToken(ctx context.Context, token string) (bool, error)
	DeleteByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type gormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new refresh session repository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &gormTokenRepository{db: db}
}

func (r *gormTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

func (r *gormTokenRepository) ConsumeByToken(ctx context.Context, token string) (bool, error) {
	// The conditional delete is the concurrency guard: the row is the
	// single-use permit, and only one delete can claim it.
	result := r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.RefreshToken{})
	if result.Error != nil {
		return false, apperrors.WrapError(apperrors.ErrInternal, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormTokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.RefreshToken{}).Error; err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

func (r *gormTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&model.RefreshToken{})
	if result.Error != nil {
		return 0, apperrors.WrapError(apperrors.ErrInternal, result.Error)
	}
	return result.RowsAffected, nil
}
