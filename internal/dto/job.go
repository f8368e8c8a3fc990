package dto

import "time"

// CreateJobRequest is the payload for recording a new application.
// ApplicationStatus and WorkType fall back to their model defaults when
// omitted.
type CreateJobRequest struct {
	Company           string `json:"company" binding:"required,max=100"`
	Position          string `json:"position" binding:"required,max=100"`
	WorkLocation      string `json:"workLocation" binding:"required,max=100"`
	ApplicationStatus string `json:"applicationStatus" binding:"omitempty,oneof=pending reject interview"`
	WorkType          string `json:"workType" binding:"omitempty,oneof=full-time part-time internship contract"`
}

// UpdateJobRequest is a sparse patch: only non-nil fields are applied.
type UpdateJobRequest struct {
	Company           *string `json:"company" binding:"omitempty,max=100"`
	Position          *string `json:"position" binding:"omitempty,max=100"`
	WorkLocation      *string `json:"workLocation" binding:"omitempty,max=100"`
	ApplicationStatus *string `json:"applicationStatus" binding:"omitempty,oneof=pending reject interview"`
	WorkType          *string `json:"workType" binding:"omitempty,oneof=full-time part-time internship contract"`
}

// JobResponse is the public view of a stored application.
type JobResponse struct {
	ID                uint      `json:"id"`
	Company           string    `json:"company"`
	Position          string    `json:"position"`
	ApplicationStatus string    `json:"applicationStatus"`
	WorkType          string    `json:"workType"`
	WorkLocation      string    `json:"workLocation"`
	CreatedBy         uint      `json:"createdBy"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ListJobsParams carries the parsed listing query for the service layer.
type ListJobsParams struct {
	ApplicationStatus string
	WorkType          string
	Search            string
	Sort              string
	Page              int
	Limit             int
}

// JobListResponse is one page of the caller's applications.
type JobListResponse struct {
	TotalNumberOfPostings  int64         `json:"totalNumberOfPostings"`
	NumberOfPostingsOnPage int           `json:"numberOfPostingsOnPage"`
	Jobs                   []JobResponse `json:"jobs"`
	NumOfPage              int           `json:"numOfPage"`
}

// MonthlyCount is one month of application activity, labelled "Jan 2006".
type MonthlyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// StatsResponse aggregates the caller's applications by status and month.
type StatsResponse struct {
	TotalJobs          int64            `json:"totalJobs"`
	Stats              map[string]int64 `json:"stats"`
	MonthlyApplication []MonthlyCount   `json:"monthlyApplication"`
}
