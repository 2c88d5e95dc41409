// FILE: internal/entity/billing_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BillStatus string

const (
	BillStatusPending   BillStatus = "Pending"
	BillStatusPaid      BillStatus = "Paid"
	BillStatusCancelled BillStatus = "Cancelled"
)

// BilledFeature is the invoice copy of a confirmed line.
type BilledFeature struct {
	LineId    uuid.UUID       `json:"line_id"`
	FeatureId uuid.UUID       `json:"feature_id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
}

type AuthorBill struct {
	Id               uuid.UUID
	OwnerId          OwnerID
	AuthorPlanId     uuid.UUID
	Email            string
	PlanName         string
	PlanRate         decimal.Decimal
	Features         []BilledFeature
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
	Currency         string
	PaymentReference *string
	Status           BillStatus
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
