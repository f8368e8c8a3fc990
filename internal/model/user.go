package model

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FullName string `gorm:"column:full_name;not null"`
	Email    string `gorm:"column:email;unique;not null"`
	Password string `gorm:"column:password;not null"`
	Location string `gorm:"column:location;default:India"`
}
