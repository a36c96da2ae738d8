// Package conversion converts player coins into main balance using the
// active coin-conversion setting.
package conversion

import (
	"context"
	"errors"
	"fmt"

	"quizadmin/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidUnits      = errors.New("units must be at least 1")
	ErrInsufficientCoins = errors.New("insufficient coins")
)

// Store is the persistence surface; Transact runs fn in one serializable
// transaction and GetUserForUpdate locks the user row.
type Store interface {
	Transact(ctx context.Context, fn func(tx Store) error) error
	GetUserForUpdate(ctx context.Context, id uint) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	InsertHistory(ctx context.Context, entry *models.BalanceHistory) error
}

// RateSource yields the currently active conversion setting.
type RateSource interface {
	GetActive(ctx context.Context) (*models.CoinConversionSetting, error)
}

// Result summarizes one conversion for the response payload.
type Result struct {
	CoinsSpent     int64           `json:"coins_spent"`
	AmountCredited decimal.Decimal `json:"amount_credited"`
	Coins          int64           `json:"coins"`
	MainBalance    decimal.Decimal `json:"main_balance"`
}

type Service struct {
	store Store
	rate  RateSource
	log   *logrus.Logger
}

func NewService(store Store, rate RateSource, log *logrus.Logger) *Service {
	return &Service{store: store, rate: rate, log: log}
}

// Convert exchanges units * coins_required coins for
// units * main_balance_amount. Coin deduction, balance credit, and the
// ledger entry commit together or not at all.
func (s *Service) Convert(ctx context.Context, userID uint, units int64) (*Result, error) {
	if units < 1 {
		return nil, ErrInvalidUnits
	}

	rate, err := s.rate.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	coinsNeeded := rate.CoinsRequired * units
	amount := rate.MainBalanceAmount.Mul(decimal.NewFromInt(units))

	var result *Result
	err = s.store.Transact(ctx, func(tx Store) error {
		user, err := tx.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user.Coins < coinsNeeded {
			return fmt.Errorf("%w: need %d, have %d", ErrInsufficientCoins, coinsNeeded, user.Coins)
		}

		before := user.MainBalance
		user.Coins -= coinsNeeded
		user.MainBalance = before.Add(amount)
		if err := tx.SaveUser(ctx, user); err != nil {
			return err
		}
		if err := tx.InsertHistory(ctx, &models.BalanceHistory{
			UserID:        userID,
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  user.MainBalance,
			Type:          models.BalanceHistoryTypeConversion,
			Reference:     fmt.Sprintf("conversion:%d", rate.ID),
			Description:   fmt.Sprintf("converted %d coins", coinsNeeded),
		}); err != nil {
			return err
		}

		result = &Result{
			CoinsSpent:     coinsNeeded,
			AmountCredited: amount,
			Coins:          user.Coins,
			MainBalance:    user.MainBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"coins":   coinsNeeded,
		"amount":  amount.String(),
	}).Info("coins converted to main balance")

	return result, nil
}
