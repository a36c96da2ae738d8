package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User is a mobile app player managed from the back office.
type User struct {
	gorm.Model
	Name         string          `gorm:"not null" json:"name"`
	Email        string          `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string          `gorm:"default:''" json:"phone"`
	Avatar       string          `gorm:"default:''" json:"avatar"`
	Coins        int64           `gorm:"default:0" json:"coins"`
	MainBalance  decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"main_balance"`
	Status       string          `gorm:"default:'active'" json:"status"`
	DeviceTokens []DeviceToken   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// DeviceToken identifies one installed app instance for push delivery.
// Rows are pruned when the push transport reports the token unknown.
type DeviceToken struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Token    string `gorm:"uniqueIndex;not null" json:"token"`
	Platform string `gorm:"default:'android'" json:"platform"`
}
