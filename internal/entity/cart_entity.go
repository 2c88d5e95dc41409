// FILE: internal/entity/cart_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineStatus string

const (
	LineStatusTemp      LineStatus = "temp"
	LineStatusConfirmed LineStatus = "confirmed"
)

// LineScope selects which of an owner's feature lines an operation looks at.
type LineScope int

const (
	ScopeTemp LineScope = iota // open cart only
	ScopeAll                   // cart plus confirmed history
)

// AuthorPlanFeature is one feature selection. While Status is temp it is a cart line;
// confirmation flips it in place and attaches the plan it was bought with.
// Name, description, rate and currency are snapshots taken when the line was added.
type AuthorPlanFeature struct {
	Id                 uuid.UUID
	OwnerId            OwnerID
	FeatureId          uuid.UUID
	PlanId             *uuid.UUID
	AuthorPlanId       *uuid.UUID
	FeatureName        string
	FeatureDescription string
	Rate               decimal.Decimal
	Currency           string
	Status             LineStatus
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewCartLine snapshots the feature's current catalog terms.
func NewCartLine(owner OwnerID, f *Feature, now time.Time) *AuthorPlanFeature {
	return &AuthorPlanFeature{
		Id:                 uuid.New(),
		OwnerId:            owner,
		FeatureId:          f.Id,
		FeatureName:        f.Name,
		FeatureDescription: f.Description,
		Rate:               f.Rate,
		Currency:           f.Currency,
		Status:             LineStatusTemp,
		IsActive:           false,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Confirm moves a temp line into the confirmed purchase record.
func (l *AuthorPlanFeature) Confirm(planId, authorPlanId uuid.UUID, now time.Time) {
	l.PlanId = &planId
	l.AuthorPlanId = &authorPlanId
	l.Status = LineStatusConfirmed
	l.IsActive = true
	l.UpdatedAt = now
}
