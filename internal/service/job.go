package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/careerlane/jobportal/internal/constants"
	"github.com/careerlane/jobportal/internal/dto"
	apperrors "github.com/careerlane/jobportal/internal/errors"
	"github.com/careerlane/jobportal/internal/model"
	"github.com/careerlane/jobportal/internal/query"
	"github.com/careerlane/jobportal/internal/repository"
	"github.com/careerlane/jobportal/pkg/logger"
	"github.com/careerlane/jobportal/pkg/redis"
)

// monthsOfHistory bounds the monthly activity chart.
const monthsOfHistory = 6

// JobService handles job posting operations scoped to their owner
type JobService interface {
	Create(ctx context.Context, ownerID uint, req dto.CreateJobRequest) (*dto.JobResponse, error)
	List(ctx context.Context, ownerID uint, params dto.ListJobsParams) (*dto.JobListResponse, error)
	Update(ctx context.Context, ownerID, jobID uint, req dto.UpdateJobRequest) (*dto.JobResponse, error)
	Delete(ctx context.Context, ownerID, jobID uint) error
	Stats(ctx context.Context, ownerID uint) (*dto.StatsResponse, error)
}

type jobService struct {
	jobs     repository.JobRepository
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewJobService creates a new job service. cache may be nil when Redis is
// not configured.
func NewJobService(jobs repository.JobRepository, cache *redis.Client, cacheTTL time.Duration) JobService {
	return &jobService{
		jobs:     jobs,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *jobService) Create(ctx context.Context, ownerID uint, req dto.CreateJobRequest) (*dto.JobResponse, error) {
	job := &model.Job{
		Company:           req.Company,
		Position:          req.Position,
		WorkLocation:      req.WorkLocation,
		ApplicationStatus: req.ApplicationStatus,
		WorkType:          req.WorkType,
		CreatedBy:         ownerID,
	}
	if job.ApplicationStatus == "" {
		job.ApplicationStatus = model.StatusPending
	}
	if job.WorkType == "" {
		job.WorkType = model.WorkTypeFullTime
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	logger.GetLogger().Info("Job created",
		zap.Uint("job_id", job.ID),
		zap.Uint("user_id", ownerID),
		zap.String("company", job.Company),
	)

	resp := toJobResponse(job)
	return &resp, nil
}

func (s *jobService) List(ctx context.Context, ownerID uint, params dto.ListJobsParams) (*dto.JobListResponse, error) {
	plan := query.Build(query.Params{
		ApplicationStatus: params.ApplicationStatus,
		WorkType:          params.WorkType,
		Search:            params.Search,
		Sort:              params.Sort,
		Page:              params.Page,
		Limit:             params.Limit,
	})

	jobs, total, err := s.jobs.List(ctx, ownerID, plan)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, toJobResponse(&jobs[i]))
	}

	return &dto.JobListResponse{
		TotalNumberOfPostings:  total,
		NumberOfPostingsOnPage: len(responses),
		Jobs:                   responses,
		NumOfPage:              query.PageCount(total, plan.Limit),
	}, nil
}

func (s *jobService) Update(ctx context.Context, ownerID, jobID uint, req dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != ownerID {
		return nil, apperrors.ErrForbidden
	}

	updates := make(map[string]any)
	if req.Company != nil {
		if strings.TrimSpace(*req.Company) == "" {
			return nil, apperrors.BadRequest("company must not be blank")
		}
		updates["company"] = *req.Company
	}
	if req.Position != nil {
		if strings.TrimSpace(*req.Position) == "" {
			return nil, apperrors.BadRequest("position must not be blank")
		}
		updates["position"] = *req.Position
	}
	if req.WorkLocation != nil {
		if strings.TrimSpace(*req.WorkLocation) == "" {
			return nil, apperrors.BadRequest("workLocation must not be blank")
		}
		updates["work_location"] = *req.WorkLocation
	}
	if req.ApplicationStatus != nil {
		updates["application_status"] = *req.ApplicationStatus
	}
	if req.WorkType != nil {
		updates["work_type"] = *req.WorkType
	}
	if len(updates) == 0 {
		return nil, apperrors.BadRequest("no fields to update")
	}

	if err := s.jobs.Update(ctx, jobID, updates); err != nil {
		return nil, err
	}

	updated, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	logger.GetLogger().Info("Job updated",
		zap.Uint("job_id", jobID),
		zap.Uint("user_id", ownerID),
	)

	resp := toJobResponse(updated)
	return &resp, nil
}

func (s *jobService) Delete(ctx context.Context, ownerID, jobID uint) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.CreatedBy != ownerID {
		return apperrors.ErrForbidden
	}

	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return err
	}

	s.invalidateStats(ctx, ownerID)

	logger.GetLogger().Info("Job deleted",
		zap.Uint("job_id", jobID),
		zap.Uint("user_id", ownerID),
	)

	return nil
}

func (s *jobService) Stats(ctx context.Context, ownerID uint) (*dto.StatsResponse, error) {
	cacheKey := statsCacheKey(ownerID)
	if s.cache != nil {
		var cached dto.StatsResponse
		if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	buckets, err := s.jobs.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64)
	var total int64
	for _, b := range buckets {
		stats[b.ApplicationStatus] = b.Count
		total += b.Count
	}

	rows, err := s.jobs.MonthlyCounts(ctx, ownerID, monthsOfHistory)
	if err != nil {
		return nil, err
	}

	// Users with no applications get an explicitly empty view rather than
	// zero-filled status buckets.
	if total == 0 {
		return &dto.StatsResponse{
			TotalJobs:          0,
			Stats:              map[string]int64{},
			MonthlyApplication: []dto.MonthlyCount{},
		}, nil
	}

	for _, status := range []string{model.StatusPending, model.StatusReject, model.StatusInterview} {
		if _, ok := stats[status]; !ok {
			stats[status] = 0
		}
	}

	// Rows arrive newest first; the chart reads left to right.
	monthly := make([]dto.MonthlyCount, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		monthly = append(monthly, dto.MonthlyCount{
			Date:  monthLabel(rows[i].Year, rows[i].Month),
			Count: rows[i].Count,
		})
	}

	resp := &dto.StatsResponse{
		TotalJobs:          total,
		Stats:              stats,
		MonthlyApplication: monthly,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, resp, s.cacheTTL); err != nil {
			logger.GetLogger().Warn("Failed to cache job stats",
				zap.Uint("user_id", ownerID),
				zap.Error(err),
			)
		}
	}

	return resp, nil
}

// invalidateStats drops the cached stats after any mutation. A stale entry
// would survive until TTL otherwise.
func (s *jobService) invalidateStats(ctx context.Context, ownerID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey(ownerID)); err != nil {
		logger.GetLogger().Warn("Failed to invalidate job stats cache",
			zap.Uint("user_id", ownerID),
			zap.Error(err),
		)
	}
}

func statsCacheKey(ownerID uint) string {
	return fmt.Sprintf("%s%d", constants.CacheKeyJobStats, ownerID)
}

// monthLabel formats a (year, month) bucket as "Jan 2006".
func monthLabel(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

func toJobResponse(job *model.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:                job.ID,
		Company:           job.Company,
		Position:          job.Position,
		ApplicationStatus: job.ApplicationStatus,
		WorkType:          job.WorkType,
		WorkLocation:      job.WorkLocation,
		CreatedBy:         job.CreatedBy,
		CreatedAt:         job.CreatedAt,
		UpdatedAt:         job.UpdatedAt,
	}
}
