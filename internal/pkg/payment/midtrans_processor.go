package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransCurrency is the only currency Snap charges in.
const MidtransCurrency = "IDR"

type MidtransProcessor struct {
	client    snap.Client
	serverKey string
	finishURL string
}

func NewMidtransProcessor(serverKey string, production bool, finishURL string) *MidtransProcessor {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	p := &MidtransProcessor{serverKey: serverKey, finishURL: finishURL}
	p.client.New(serverKey, env)
	return p
}

func (p *MidtransProcessor) Name() string { return ProviderMidtrans }

// CreateCheckout opens a Snap transaction. Rupiah has no minor unit, so an
// item with a fractional amount is an error rather than a rounded charge.
func (p *MidtransProcessor) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if !strings.EqualFold(req.Currency, MidtransCurrency) {
		return nil, fmt.Errorf("midtrans: %w: %q", ErrUnsupportedCurrency, req.Currency)
	}

	items := make([]midtrans.ItemDetails, 0, len(req.Items))
	var gross int64
	for _, it := range req.Items {
		if !it.Amount.IsInteger() {
			return nil, fmt.Errorf("midtrans: item %s amount %s is not a whole rupiah", it.Id, it.Amount.String())
		}
		amount := it.Amount.IntPart()
		if amount <= 0 {
			continue
		}
		gross += amount
		items = append(items, midtrans.ItemDetails{
			ID:    it.Id,
			Name:  truncate(it.Name, 50),
			Price: amount,
			Qty:   1,
		})
	}
	if gross <= 0 {
		return nil, fmt.Errorf("midtrans: nothing to charge for bill %s", req.BillId)
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.BillId,
			GrossAmt: gross,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: p.finishURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
		Items:           &items,
		EnabledPayments: snap.AllSnapPaymentType,
	}

	resp, midErr := p.client.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &CheckoutSession{
		Provider:    ProviderMidtrans,
		Reference:   req.BillId,
		RedirectURL: resp.RedirectURL,
	}, nil
}

type MidtransNotification struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

// ParseNotification verifies SHA512(order_id + status_code + gross_amount + server_key).
func (p *MidtransProcessor) ParseNotification(body []byte) (*Notification, error) {
	var n MidtransNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("midtrans notification: %w", err)
	}
	if !VerifyMidtransSignature(n, p.serverKey) {
		return nil, ErrInvalidSignature
	}
	return &Notification{
		Provider:  ProviderMidtrans,
		Reference: n.OrderId,
		Outcome:   midtransOutcome(n.TransactionStatus, n.FraudStatus),
		RawStatus: n.TransactionStatus,
	}, nil
}

func VerifyMidtransSignature(n MidtransNotification, serverKey string) bool {
	if serverKey == "" || n.SignatureKey == "" {
		return false
	}
	sum := sha512.Sum512([]byte(n.OrderId + n.StatusCode + n.GrossAmount + serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) == 1
}

func midtransOutcome(status, fraud string) Outcome {
	switch status {
	case "capture":
		if fraud == "challenge" {
			return OutcomePending
		}
		return OutcomePaid
	case "settlement":
		return OutcomePaid
	case "deny", "cancel", "expire", "failure":
		return OutcomeFailed
	default:
		return OutcomePending
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
