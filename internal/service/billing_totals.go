package service

import (
	"ebook-studio-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type billTotals struct {
	FeaturesTotal decimal.Decimal
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
}

// computeTotals prices a plan plus snapshot lines. Tax is rounded to cents.
func computeTotals(plan *entity.Plan, lines []*entity.AuthorPlanFeature) billTotals {
	features := sumRates(lines)
	subtotal := plan.Rate.Add(features)
	discount := decimal.Zero
	tax := subtotal.Sub(discount).Mul(plan.TaxRate).Round(2)
	return billTotals{
		FeaturesTotal: features,
		Subtotal:      subtotal,
		Discount:      discount,
		Tax:           tax,
		Total:         subtotal.Sub(discount).Add(tax),
	}
}

func newAuthorBill(ap *entity.AuthorPlan, plan *entity.Plan, lines []*entity.AuthorPlanFeature, email, currency string) *entity.AuthorBill {
	t := computeTotals(plan, lines)

	billed := make([]entity.BilledFeature, 0, len(lines))
	for _, l := range lines {
		billed = append(billed, entity.BilledFeature{
			LineId:    l.Id,
			FeatureId: l.FeatureId,
			Name:      l.FeatureName,
			Rate:      l.Rate,
		})
	}
	if plan.Currency != "" {
		currency = plan.Currency
	}

	status := entity.BillStatusPending
	if t.Total.IsZero() {
		status = entity.BillStatusPaid
	}

	return &entity.AuthorBill{
		Id:           uuid.New(),
		OwnerId:      ap.OwnerId,
		AuthorPlanId: ap.Id,
		Email:        email,
		PlanName:     ap.PlanName,
		PlanRate:     ap.Rate,
		Features:     billed,
		Subtotal:     t.Subtotal,
		Discount:     t.Discount,
		Tax:          t.Tax,
		Total:        t.Total,
		Currency:     currency,
		Status:       status,
		IsActive:     true,
		CreatedAt:    ap.CreatedAt,
		UpdatedAt:    ap.CreatedAt,
	}
}
