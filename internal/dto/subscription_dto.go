package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlanResponse struct {
	Id           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	DurationDays int             `json:"duration_days"`
	MaxEbooks    int             `json:"max_ebooks"`
	TierRank     int             `json:"tier_rank"`
	IsTrial      bool            `json:"is_trial"`
	IsActive     bool            `json:"is_active"`
}

type SubscriptionStatusResponse struct {
	Active       bool               `json:"active"`
	AuthorPlanId *uuid.UUID         `json:"author_plan_id,omitempty"`
	PlanId       *uuid.UUID         `json:"plan_id,omitempty"`
	PlanName     string             `json:"plan_name,omitempty"`
	StartAt      *time.Time         `json:"start_at,omitempty"`
	EndAt        *time.Time         `json:"end_at,omitempty"`
	MaxEbooks    int                `json:"max_ebooks"`
	EbooksUsed   int64              `json:"ebooks_used"`
	TrialUsed    bool               `json:"trial_used"`
	Features     []CartItemResponse `json:"features"`
}

type CancelSubscriptionRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type CancelSubscriptionResponse struct {
	AuthorPlanId uuid.UUID  `json:"author_plan_id"`
	CancelledAt  time.Time  `json:"cancelled_at"`
	BillId       *uuid.UUID `json:"bill_id,omitempty"`
}
