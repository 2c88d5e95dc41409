package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

type StripeProcessor struct {
	secretKey     string
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewStripeProcessor(secretKey, webhookSecret, successURL, cancelURL string) *StripeProcessor {
	return &StripeProcessor{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

func (p *StripeProcessor) Name() string { return ProviderStripe }

func (p *StripeProcessor) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	// Stripe uses a global API key.
	stripe.Key = p.secretKey

	currency := strings.ToLower(req.Currency)
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, it := range req.Items {
		cents := it.Amount.Shift(2).Round(0).IntPart()
		if cents <= 0 {
			continue
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(cents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}
	if len(lineItems) == 0 {
		return nil, fmt.Errorf("stripe: nothing to charge for bill %s", req.BillId)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(p.successURL),
		CancelURL:         stripe.String(p.cancelURL),
		ClientReferenceID: stripe.String(req.BillId),
		CustomerEmail:     stripe.String(req.Email),
		LineItems:         lineItems,
		Metadata: map[string]string{
			"bill_id": req.BillId,
		},
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.IdempotencyKey = stripe.String(req.IdempotencyKey)
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}

	return &CheckoutSession{
		Provider:    ProviderStripe,
		Reference:   sess.ID,
		RedirectURL: sess.URL,
	}, nil
}

// ParseWebhook verifies the Stripe-Signature header and maps checkout session events.
// Events that do not concern a checkout session return nil, nil.
func (p *StripeProcessor) ParseWebhook(body []byte, signature string) (*Notification, error) {
	if p.webhookSecret == "" {
		return nil, fmt.Errorf("stripe webhook secret not configured")
	}
	evt, err := webhook.ConstructEvent(body, signature, p.webhookSecret)
	if err != nil {
		return nil, ErrInvalidSignature
	}

	var outcome Outcome
	switch evt.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		outcome = OutcomePaid
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		outcome = OutcomeFailed
	default:
		return nil, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("stripe checkout session payload: %w", err)
	}
	if outcome == OutcomePaid && session.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		outcome = OutcomePending
	}

	return &Notification{
		Provider:  ProviderStripe,
		Reference: session.ID,
		Outcome:   outcome,
		RawStatus: string(evt.Type),
	}, nil
}
