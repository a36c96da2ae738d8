// Package withdrawal implements the withdrawal request lifecycle: creation
// against the active fee policy, status transitions, and the atomic
// refund-and-record step on rejection.
package withdrawal

import (
	"context"
	"fmt"
	"time"

	"quizadmin/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Store is the persistence surface. Transact runs fn inside one serializable
// transaction; GetUserForUpdate must lock the user row for the transaction's
// duration.
type Store interface {
	Transact(ctx context.Context, fn func(tx Store) error) error
	GetUserForUpdate(ctx context.Context, id uint) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	InsertHistory(ctx context.Context, entry *models.BalanceHistory) error
	GetRequest(ctx context.Context, id uint) (*models.WithdrawalRequest, error)
	InsertRequest(ctx context.Context, req *models.WithdrawalRequest) error
	SaveRequest(ctx context.Context, req *models.WithdrawalRequest) error
}

// FeePolicySource yields the currently active withdrawal setting.
type FeePolicySource interface {
	GetActive(ctx context.Context) (*models.WithdrawalSetting, error)
}

type Service struct {
	store  Store
	policy FeePolicySource
	log    *logrus.Logger
	now    func() time.Time
}

func NewService(store Store, policy FeePolicySource, log *logrus.Logger) *Service {
	return &Service{
		store:  store,
		policy: policy,
		log:    log,
		now:    time.Now,
	}
}

var hundred = decimal.NewFromInt(100)

// ComputeFee applies the fee policy to an amount:
// fee = amount * fee_percentage/100 + fee_fixed, rounded to 2 decimal
// places; net = amount - fee. All fixed-point, never binary floats.
func ComputeFee(policy *models.WithdrawalSetting, amount decimal.Decimal) (fee, net decimal.Decimal) {
	fee = amount.Mul(policy.FeePercentage).Div(hundred).Add(policy.FeeFixed).Round(2)
	net = amount.Sub(fee)
	return fee, net
}

// Create opens a withdrawal request: validates the amount against the active
// fee policy, then deducts the amount from the user's main balance, inserts
// the request, and writes the ledger entry in one transaction.
func (s *Service) Create(ctx context.Context, userID uint, amount decimal.Decimal, method, details string) (*models.WithdrawalRequest, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	policy, err := s.policy.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if amount.LessThan(policy.MinimumAmount) {
		return nil, fmt.Errorf("%w: minimum is %s", ErrBelowMinimum, policy.MinimumAmount)
	}

	fee, net := ComputeFee(policy, amount)
	if !net.IsPositive() {
		return nil, fmt.Errorf("%w: fee %s leaves nothing to pay out", ErrInvalidAmount, fee)
	}

	req := &models.WithdrawalRequest{
		UserID:         userID,
		Amount:         amount,
		Fee:            fee,
		NetAmount:      net,
		PaymentMethod:  method,
		PaymentDetails: details,
		Status:         models.WithdrawalStatusPending,
	}

	err = s.store.Transact(ctx, func(tx Store) error {
		user, err := tx.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user.MainBalance.LessThan(amount) {
			return ErrInsufficientBalance
		}

		before := user.MainBalance
		user.MainBalance = before.Sub(amount)
		if err := tx.SaveUser(ctx, user); err != nil {
			return err
		}
		if err := tx.InsertRequest(ctx, req); err != nil {
			return err
		}
		return tx.InsertHistory(ctx, &models.BalanceHistory{
			UserID:        userID,
			Amount:        amount.Neg(),
			BalanceBefore: before,
			BalanceAfter:  user.MainBalance,
			Type:          models.BalanceHistoryTypeWithdrawal,
			Reference:     fmt.Sprintf("withdrawal:%d", req.ID),
			Description:   "withdrawal request",
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": req.ID,
		"user_id":    userID,
		"amount":     amount.String(),
		"fee":        fee.String(),
	}).Info("withdrawal request created")

	return req, nil
}

// Transition moves a request to a new status. Out-of-order transitions are
// rejected with no mutation. Rejection refunds the amount to the user's main
// balance and records a BalanceHistory entry, atomically with the status
// change: all three changes are visible together or not at all.
func (s *Service) Transition(ctx context.Context, id uint, newStatus string, adminID uint, notes string) (*models.WithdrawalRequest, error) {
	var req *models.WithdrawalRequest

	err := s.store.Transact(ctx, func(tx Store) error {
		var err error
		req, err = tx.GetRequest(ctx, id)
		if err != nil {
			return err
		}
		if !models.CanTransitionWithdrawal(req.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.Status, newStatus)
		}

		if newStatus == models.WithdrawalStatusRejected {
			user, err := tx.GetUserForUpdate(ctx, req.UserID)
			if err != nil {
				return err
			}
			before := user.MainBalance
			user.MainBalance = before.Add(req.Amount)
			if err := tx.SaveUser(ctx, user); err != nil {
				return err
			}
			if err := tx.InsertHistory(ctx, &models.BalanceHistory{
				UserID:        req.UserID,
				Amount:        req.Amount,
				BalanceBefore: before,
				BalanceAfter:  user.MainBalance,
				Type:          models.BalanceHistoryTypeWithdrawalRefund,
				Reference:     fmt.Sprintf("withdrawal:%d", req.ID),
				Description:   "withdrawal rejected, amount refunded",
			}); err != nil {
				return err
			}
		}

		now := s.now()
		req.Status = newStatus
		req.AdminNotes = notes
		req.ProcessedBy = &adminID
		req.ProcessedAt = &now
		return tx.SaveRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": id,
		"status":     newStatus,
		"admin_id":   adminID,
	}).Info("withdrawal request transitioned")

	return req, nil
}
