package dto

import "github.com/google/uuid"

// BillIssuedMessage travels on the in-process bus after a confirmation commits.
type BillIssuedMessage struct {
	BillId      uuid.UUID `json:"bill_id"`
	Email       string    `json:"email"`
	PaymentLink string    `json:"payment_link,omitempty"`
}
