package mapper

import (
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	return &entity.Plan{
		Id:           p.Id,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Rate:         p.Rate,
		Currency:     p.Currency,
		TaxRate:      p.TaxRate,
		DurationDays: p.DurationDays,
		MaxEbooks:    p.MaxEbooks,
		TierRank:     p.TierRank,
		IsTrial:      p.IsTrial,
		IsActive:     p.IsActive,
		SortOrder:    p.SortOrder,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.Plan) *model.Plan {
	if p == nil {
		return nil
	}
	return &model.Plan{
		Id:           p.Id,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Rate:         p.Rate,
		Currency:     p.Currency,
		TaxRate:      p.TaxRate,
		DurationDays: p.DurationDays,
		MaxEbooks:    p.MaxEbooks,
		TierRank:     p.TierRank,
		IsTrial:      p.IsTrial,
		IsActive:     p.IsActive,
		SortOrder:    p.SortOrder,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *SubscriptionMapper) AuthorPlanToEntity(a *model.AuthorPlan) *entity.AuthorPlan {
	if a == nil {
		return nil
	}
	return &entity.AuthorPlan{
		Id:                 a.Id,
		OwnerId:            entity.OwnerID(a.OwnerId),
		PlanId:             a.PlanId,
		PlanName:           a.PlanName,
		Rate:               a.Rate,
		Currency:           a.Currency,
		DurationDays:       a.DurationDays,
		MaxEbooks:          a.MaxEbooks,
		StartAt:            a.StartAt,
		EndAt:              a.EndAt,
		IsActive:           a.IsActive,
		TrialUsed:          a.TrialUsed,
		PaymentReference:   a.PaymentReference,
		CancelledAt:        a.CancelledAt,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func (m *SubscriptionMapper) AuthorPlanToModel(a *entity.AuthorPlan) *model.AuthorPlan {
	if a == nil {
		return nil
	}
	return &model.AuthorPlan{
		Id:                 a.Id,
		OwnerId:            a.OwnerId.UUID(),
		PlanId:             a.PlanId,
		PlanName:           a.PlanName,
		Rate:               a.Rate,
		Currency:           a.Currency,
		DurationDays:       a.DurationDays,
		MaxEbooks:          a.MaxEbooks,
		StartAt:            a.StartAt,
		EndAt:              a.EndAt,
		IsActive:           a.IsActive,
		TrialUsed:          a.TrialUsed,
		PaymentReference:   a.PaymentReference,
		CancelledAt:        a.CancelledAt,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
