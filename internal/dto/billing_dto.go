// FILE: internal/dto/billing_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BilledFeatureResponse struct {
	FeatureId uuid.UUID       `json:"feature_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

type BillResponse struct {
	Id               uuid.UUID               `json:"id"`
	AuthorPlanId     uuid.UUID               `json:"author_plan_id"`
	PlanName         string                  `json:"plan_name"`
	PlanPrice        decimal.Decimal         `json:"plan_price"`
	Features         []BilledFeatureResponse `json:"features"`
	Subtotal         decimal.Decimal         `json:"subtotal"`
	Discount         decimal.Decimal         `json:"discount"`
	Tax              decimal.Decimal         `json:"tax"`
	Total            decimal.Decimal         `json:"total"`
	Currency         string                  `json:"currency"`
	Status           string                  `json:"status"`
	PaymentReference *string                 `json:"payment_reference,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
}
