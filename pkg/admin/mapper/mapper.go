package mapper

import (
	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
)

// FeatureToResponse converts a catalog entity to its response DTO
func FeatureToResponse(f *entity.Feature) dto.FeatureResponse {
	return dto.FeatureResponse{
		Id:          f.Id,
		Key:         f.Key,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Rate,
		Currency:    f.Currency,
	}
}

// FeaturesToResponse converts multiple catalog entities
func FeaturesToResponse(features []*entity.Feature) []dto.FeatureResponse {
	res := make([]dto.FeatureResponse, 0, len(features))
	for _, f := range features {
		res = append(res, FeatureToResponse(f))
	}
	return res
}

// PlanToResponse converts a plan entity to its response DTO
func PlanToResponse(p *entity.Plan) dto.PlanResponse {
	return dto.PlanResponse{
		Id:           p.Id,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Rate,
		Currency:     p.Currency,
		TaxRate:      p.TaxRate,
		DurationDays: p.DurationDays,
		MaxEbooks:    p.MaxEbooks,
		TierRank:     p.TierRank,
		IsTrial:      p.IsTrial,
		IsActive:     p.IsActive,
	}
}

// PlansToResponse converts multiple plan entities
func PlansToResponse(plans []*entity.Plan) []dto.PlanResponse {
	res := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, PlanToResponse(p))
	}
	return res
}
