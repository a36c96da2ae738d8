package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Withdrawal request statuses.
const (
	WithdrawalStatusPending    = "pending"
	WithdrawalStatusApproved   = "approved"
	WithdrawalStatusProcessing = "processing"
	WithdrawalStatusCompleted  = "completed"
	WithdrawalStatusRejected   = "rejected"
)

// withdrawalTransitions defines the allowed status graph:
// pending -> approved -> processing -> completed, or pending -> rejected.
var withdrawalTransitions = map[string][]string{
	WithdrawalStatusPending:    {WithdrawalStatusApproved, WithdrawalStatusRejected},
	WithdrawalStatusApproved:   {WithdrawalStatusProcessing},
	WithdrawalStatusProcessing: {WithdrawalStatusCompleted},
}

// CanTransitionWithdrawal reports whether a withdrawal may move from one
// status to another.
func CanTransitionWithdrawal(from, to string) bool {
	for _, allowed := range withdrawalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// WithdrawalRequest is a user's request to cash out main balance.
// Amount is deducted up front; rejection refunds it atomically with the
// status change and a BalanceHistory entry.
type WithdrawalRequest struct {
	gorm.Model
	UserID         uint            `gorm:"index;not null" json:"user_id"`
	User           User            `gorm:"foreignKey:UserID" json:"-"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Fee            decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"fee"`
	NetAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"net_amount"`
	PaymentMethod  string          `gorm:"not null" json:"payment_method"`
	PaymentDetails string          `gorm:"default:''" json:"payment_details"`
	Status         string          `gorm:"index;default:'pending'" json:"status"`
	AdminNotes     string          `gorm:"default:''" json:"admin_notes"`
	ProcessedBy    *uint           `json:"processed_by"`
	ProcessedAt    *time.Time      `json:"processed_at"`
}
