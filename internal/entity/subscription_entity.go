// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Plan is a subscription tier. TierRank orders tiers explicitly (0 = free trial).
type Plan struct {
	Id           uuid.UUID
	Name         string
	Slug         string
	Description  string
	Rate         decimal.Decimal
	Currency     string
	TaxRate      decimal.Decimal
	DurationDays int
	MaxEbooks    int // -1 = unlimited
	TierRank     int
	IsTrial      bool
	IsActive     bool
	SortOrder    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthorPlan is a confirmed subscription. Plan terms are copied at purchase time.
type AuthorPlan struct {
	Id                 uuid.UUID
	OwnerId            OwnerID
	PlanId             uuid.UUID
	PlanName           string
	Rate               decimal.Decimal
	Currency           string
	DurationDays       int
	MaxEbooks          int
	StartAt            time.Time
	EndAt              time.Time
	IsActive           bool
	TrialUsed          bool
	PaymentReference   *string
	CancelledAt        *time.Time
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewAuthorPlan snapshots the plan terms. Confirming any plan consumes the trial.
func NewAuthorPlan(owner OwnerID, p *Plan, now time.Time) *AuthorPlan {
	return &AuthorPlan{
		Id:           uuid.New(),
		OwnerId:      owner,
		PlanId:       p.Id,
		PlanName:     p.Name,
		Rate:         p.Rate,
		Currency:     p.Currency,
		DurationDays: p.DurationDays,
		MaxEbooks:    p.MaxEbooks,
		StartAt:      now,
		EndAt:        now.AddDate(0, 0, p.DurationDays),
		IsActive:     true,
		TrialUsed:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (a *AuthorPlan) IsCurrent(now time.Time) bool {
	return a.IsActive && a.CancelledAt == nil && now.Before(a.EndAt)
}

func (a *AuthorPlan) Cancel(reason string, now time.Time) {
	a.IsActive = false
	a.CancelledAt = &now
	a.CancellationReason = &reason
	a.UpdatedAt = now
}
