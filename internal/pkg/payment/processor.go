// Package payment wraps the hosted checkout providers.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

const (
	ProviderMidtrans = "midtrans"
	ProviderStripe   = "stripe"
)

var (
	ErrInvalidSignature    = errors.New("invalid payment notification signature")
	ErrUnsupportedCurrency = errors.New("currency not supported by payment provider")
)

type CheckoutItem struct {
	Id     string
	Name   string
	Amount decimal.Decimal
}

type CheckoutRequest struct {
	BillId         string
	Email          string
	Currency       string
	Items          []CheckoutItem // tax is passed as its own item
	IdempotencyKey string
}

type CheckoutSession struct {
	Provider    string
	Reference   string // looked up again when the provider notifies us
	RedirectURL string
}

type Outcome string

const (
	OutcomePaid    Outcome = "paid"
	OutcomeFailed  Outcome = "failed"
	OutcomePending Outcome = "pending"
)

// Notification is a verified provider callback reduced to what billing needs.
type Notification struct {
	Provider  string
	Reference string
	Outcome   Outcome
	RawStatus string
}

type Processor interface {
	Name() string
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

func Total(items []CheckoutItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}
