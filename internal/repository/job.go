package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/careerlane/jobportal/internal/errors"
	"github.com/careerlane/jobportal/internal/model"
	"github.com/careerlane/jobportal/internal/query"
)

// StatusCount is one application_status bucket.
type StatusCount struct {
	ApplicationStatus string
	Count             int64
}

// MonthlyCount is one (year, month) bucket of created applications.
type MonthlyCount struct {
	Year  int
	Month int
	Count int64
}

// JobRepository handles job posting data access
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id uint) (*model.Job, error)
	// List returns one page of the owner's jobs plus the total row count
	// before pagination.
	List(ctx context.Context, ownerID uint, plan query.Plan) ([]model.Job, int64, error)
	Update(ctx context.Context, id uint, updates map[string]any) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, ownerID uint) ([]StatusCount, error)
	MonthlyCounts(ctx context.Context, ownerID uint, months int) ([]MonthlyCount, error)
}

type gormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &gormJobRepository{db: db}
}

func (r *gormJobRepository) Create(ctx context.Context, job *model.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

func (r *gormJobRepository) GetByID(ctx context.Context, id uint) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return &job, nil
}

func (r *gormJobRepository) List(ctx context.Context, ownerID uint, plan query.Plan) ([]model.Job, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Job{}).Where("created_by = ?", ownerID)

	for column, value := range plan.Filters {
		tx = tx.Where(column+" = ?", value)
	}
	if plan.SearchPattern != "" {
		tx = tx.Where("position ILIKE ?", plan.SearchPattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	var jobs []model.Job
	if err := tx.Order(plan.Order).Limit(plan.Limit).Offset(plan.Offset).Find(&jobs).Error; err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return jobs, total, nil
}

func (r *gormJobRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return apperrors.WrapError(apperrors.ErrInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

func (r *gormJobRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Job{}, id)
	if result.Error != nil {
		return apperrors.WrapError(apperrors.ErrInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

func (r *gormJobRepository) CountByStatus(ctx context.Context, ownerID uint) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Select("application_status, COUNT(*) AS count").
		Where("created_by = ?", ownerID).
		Group("application_status").
		Scan(&counts).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return counts, nil
}

func (r *gormJobRepository) MonthlyCounts(ctx context.Context, ownerID uint, months int) ([]MonthlyCount, error) {
	var counts []MonthlyCount
	err := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Select("EXTRACT(YEAR FROM created_at)::int AS year, EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count").
		Where("created_by = ?", ownerID).
		Group("year, month").
		Order("year DESC, month DESC").
		Limit(months).
		Scan(&counts).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return counts, nil
}
