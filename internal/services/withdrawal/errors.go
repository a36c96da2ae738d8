package withdrawal

import "errors"

var (
	ErrRequestNotFound     = errors.New("withdrawal request not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidAmount       = errors.New("invalid withdrawal amount")
	ErrBelowMinimum        = errors.New("amount is below the minimum withdrawal")
	ErrInsufficientBalance = errors.New("insufficient main balance")
	ErrInvalidTransition   = errors.New("invalid status transition")
)
