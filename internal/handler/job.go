package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careerlane/jobportal/internal/constants"
	"github.com/careerlane/jobportal/internal/dto"
	apperrors "github.com/careerlane/jobportal/internal/errors"
	"github.com/careerlane/jobportal/internal/middleware"
	"github.com/careerlane/jobportal/internal/service"
)

// JobHandler serves job posting CRUD and statistics
type JobHandler struct {
	jobs service.JobService
}

func NewJobHandler(jobs service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Create records a new application for the caller
// POST /api/v1/job/create-job
func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, job, "Job created successfully")
}

// List returns one filtered, sorted page of the caller's applications
// GET /api/v1/job/get-job
func (h *JobHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	params := dto.ListJobsParams{
		ApplicationStatus: c.DefaultQuery(constants.QueryParamStatus, constants.FilterAll),
		WorkType:          c.DefaultQuery(constants.QueryParamType, constants.FilterAll),
		Search:            c.Query(constants.QueryParamSearch),
		Sort:              c.Query(constants.QueryParamSort),
	}

	page, err := strconv.Atoi(c.DefaultQuery(constants.QueryParamPage, constants.DefaultPage))
	if err != nil {
		respondError(c, apperrors.BadRequest("page must be a number"))
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery(constants.QueryParamLimit, constants.DefaultLimit))
	if err != nil {
		respondError(c, apperrors.BadRequest("limit must be a number"))
		return
	}
	params.Page = page
	params.Limit = limit

	result, err := h.jobs.List(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, result, "Jobs fetched successfully")
}

// Update applies a sparse patch to one of the caller's applications
// PATCH /api/v1/job/update-job/:jobId
func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	jobID, err := parseJobID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), userID, jobID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, job, "Job updated successfully")
}

// Delete removes one of the caller's applications
// DELETE /api/v1/job/delete-job/:jobId
func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	jobID, err := parseJobID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), userID, jobID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Job deleted successfully")
}

// Stats aggregates the caller's applications by status and month
// GET /api/v1/job/stats
func (h *JobHandler) Stats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	stats, err := h.jobs.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, stats, "Job stats fetched successfully")
}

func parseJobID(c *gin.Context) (uint, error) {
	raw := c.Param("jobId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidJobID
	}
	return uint(id), nil
}
