// FILE: internal/dto/feature_dto.go
// DTOs for the feature catalog and the cart
package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FeatureResponse struct {
	Id          uuid.UUID       `json:"id"`
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	InCart      bool            `json:"in_cart"`
}

// FeatureCatalogResponse lists the active catalog next to the caller's cart,
// both keyed by feature id.
type FeatureCatalogResponse struct {
	Features map[string]FeatureResponse  `json:"features"`
	Cart     map[string]CartItemResponse `json:"cart"`
	Order    []uuid.UUID                 `json:"order"`
}

// --- Cart ---

type CartFeatureRequest struct {
	FeatureId string `json:"feature_id" validate:"required,uuid"`
}

type SuggestedPlanResponse struct {
	Id    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type CartMutationResponse struct {
	Success       bool                   `json:"success"`
	Message       string                 `json:"message,omitempty"`
	Added         *bool                  `json:"added,omitempty"`
	ItemCount     int                    `json:"item_count"`
	SuggestedPlan *SuggestedPlanResponse `json:"suggested_plan,omitempty"`
}

type CartItemResponse struct {
	Id    uuid.UUID       `json:"id"` // feature id
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type CartPreviewResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
	Count int                `json:"count"`
}

type ConfirmCartRequest struct {
	PlanId string `json:"plan_id" validate:"required,uuid"`
}

type ConfirmCartResponse struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message,omitempty"`
	Redirect     *string    `json:"redirect,omitempty"`
	AuthorPlanId *uuid.UUID `json:"author_plan_id,omitempty"`
	BillId       *uuid.UUID `json:"bill_id,omitempty"`
}

type OrderSummaryResponse struct {
	PlanId        uuid.UUID          `json:"plan_id"`
	PlanName      string             `json:"plan_name"`
	PlanPrice     decimal.Decimal    `json:"plan_price"`
	Items         []CartItemResponse `json:"items"`
	FeaturesTotal decimal.Decimal    `json:"features_total"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxRate       decimal.Decimal    `json:"tax_rate"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	Currency      string             `json:"currency"`
}
