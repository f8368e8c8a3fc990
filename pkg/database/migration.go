package database

import (
	"gorm.io/gorm"

	"github.com/careerlane/jobportal/internal/model"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Job{},
		&model.RefreshToken{},
	)
}
