package model

import (
	"gorm.io/gorm"
)

// Application status values for a job posting.
const (
	StatusPending   = "pending"
	StatusReject    = "reject"
	StatusInterview = "interview"
)

// Work type values for a job posting.
const (
	WorkTypeFullTime   = "full-time"
	WorkTypePartTime   = "part-time"
	WorkTypeInternship = "internship"
	WorkTypeContract   = "contract"
)

type Job struct {
	gorm.Model
	Company           string `gorm:"column:company;not null"`
	Position          string `gorm:"column:position;size:100;not null"`
	ApplicationStatus string `gorm:"column:application_status;default:pending;index"`
	WorkType          string `gorm:"column:work_type;default:full-time"`
	WorkLocation      string `gorm:"column:work_location;not null;default:Mumbai"`
	CreatedBy         uint   `gorm:"column:created_by;not null;index"`
}

// ValidApplicationStatus reports whether s is one of the allowed status values.
func ValidApplicationStatus(s string) bool {
	switch s {
	case StatusPending, StatusReject, StatusInterview:
		return true
	}
	return false
}

// ValidWorkType reports whether s is one of the allowed work type values.
func ValidWorkType(s string) bool {
	switch s {
	case WorkTypeFullTime, WorkTypePartTime, WorkTypeInternship, WorkTypeContract:
		return true
	}
	return false
}
