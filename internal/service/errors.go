package service

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrFeatureNotFound        = errors.New("feature not found")
	ErrPlanNotFound           = errors.New("plan not found")
	ErrNoActiveSubscription   = errors.New("no active subscription")
	ErrDuplicateConfirmation  = errors.New("plan was already confirmed moments ago")
	ErrConfirmationInProgress = errors.New("another confirmation is in progress")
	ErrIdempotencyKeyReused   = errors.New("idempotency key was already used for a different plan")
	ErrBookLimitReached       = errors.New("e-book allowance for the current plan is used up")
	ErrBookNotFound           = errors.New("book not found")
	ErrBillNotFound           = errors.New("bill not found")
	ErrDuplicateKey           = errors.New("key already exists")
)
