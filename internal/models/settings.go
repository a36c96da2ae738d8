package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SettingRecord is implemented by settings rows that participate in the
// single-active invariant: within one table at most one row has
// is_active = true at any observable time.
type SettingRecord interface {
	PrimaryKey() uint
	Active() bool
	SetActive(active bool)
}

// CoinConversionSetting defines how many coins convert into how much main
// balance. Only the active row is in effect.
type CoinConversionSetting struct {
	gorm.Model
	CoinsRequired     int64           `gorm:"not null" json:"coins_required"`
	MainBalanceAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"main_balance_amount"`
	Description       string          `gorm:"default:''" json:"description"`
	IsActive          bool            `gorm:"index;default:false" json:"is_active"`
}

func (s *CoinConversionSetting) PrimaryKey() uint { return s.ID }
func (s *CoinConversionSetting) Active() bool     { return s.IsActive }
func (s *CoinConversionSetting) SetActive(active bool) {
	s.IsActive = active
}

// WithdrawalSetting defines the fee policy applied to withdrawal requests:
// fee = amount * fee_percentage/100 + fee_fixed.
type WithdrawalSetting struct {
	gorm.Model
	MinimumAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"minimum_amount"`
	FeePercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"fee_percentage"`
	FeeFixed      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"fee_fixed"`
	Description   string          `gorm:"default:''" json:"description"`
	IsActive      bool            `gorm:"index;default:false" json:"is_active"`
}

func (s *WithdrawalSetting) PrimaryKey() uint { return s.ID }
func (s *WithdrawalSetting) Active() bool     { return s.IsActive }
func (s *WithdrawalSetting) SetActive(active bool) {
	s.IsActive = active
}
