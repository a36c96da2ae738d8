package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Balance history entry types.
const (
	BalanceHistoryTypeConversion       = "conversion"
	BalanceHistoryTypeWithdrawal       = "withdrawal"
	BalanceHistoryTypeWithdrawalRefund = "withdrawal_refund"
	BalanceHistoryTypeAdjustment       = "adjustment"
)

// BalanceHistory is an immutable ledger entry for a user's main balance.
// Rows are only ever inserted, always inside the same transaction as the
// balance mutation they record.
type BalanceHistory struct {
	gorm.Model
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance_after"`
	Type          string          `gorm:"index;not null" json:"type"`
	Reference     string          `gorm:"default:''" json:"reference"`
	Description   string          `gorm:"default:''" json:"description"`
}
