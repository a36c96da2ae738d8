package models

import (
	"gorm.io/gorm"
)

// Admin is a back-office operator account. Mobile app players live in User.
type Admin struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Password     string `gorm:"not null" json:"-"`
	Name         string `gorm:"not null" json:"name"`
	Role         string `gorm:"default:'admin'" json:"role"`
	Status       string `gorm:"default:'active'" json:"status"`
	TokenVersion int    `gorm:"default:1" json:"-"`
}
