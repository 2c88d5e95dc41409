package dto

import "github.com/shopspring/decimal"

// --- Feature Catalog ---

type CreateFeatureRequest struct {
	Key         string          `json:"key" validate:"required,max=100"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	IsActive    bool            `json:"is_active"`
	SortOrder   int             `json:"sort_order"`
}

type UpdateFeatureRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
	SortOrder   *int             `json:"sort_order,omitempty"`
}

// --- Plans ---

type CreatePlanRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Slug         string          `json:"slug" validate:"required,max=100"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	DurationDays int             `json:"duration_days" validate:"required,min=1"`
	MaxEbooks    int             `json:"max_ebooks" validate:"gte=-1"`
	TierRank     int             `json:"tier_rank" validate:"gte=0"`
	IsTrial      bool            `json:"is_trial"`
	SortOrder    int             `json:"sort_order"`
}

type UpdatePlanRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	TaxRate      *decimal.Decimal `json:"tax_rate,omitempty"`
	DurationDays *int             `json:"duration_days,omitempty"`
	MaxEbooks    *int             `json:"max_ebooks,omitempty"`
	TierRank     *int             `json:"tier_rank,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
	SortOrder    *int             `json:"sort_order,omitempty"`
}
