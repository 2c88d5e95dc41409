package mapper

import (
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/model"
)

type CartMapper struct{}

func NewCartMapper() *CartMapper {
	return &CartMapper{}
}

func (m *CartMapper) ToEntity(l *model.AuthorPlanFeature) *entity.AuthorPlanFeature {
	if l == nil {
		return nil
	}
	return &entity.AuthorPlanFeature{
		Id:                 l.Id,
		OwnerId:            entity.OwnerID(l.OwnerId),
		FeatureId:          l.FeatureId,
		PlanId:             l.PlanId,
		AuthorPlanId:       l.AuthorPlanId,
		FeatureName:        l.FeatureName,
		FeatureDescription: l.FeatureDescription,
		Rate:               l.Rate,
		Currency:           l.Currency,
		Status:             entity.LineStatus(l.Status),
		IsActive:           l.IsActive,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func (m *CartMapper) ToModel(l *entity.AuthorPlanFeature) *model.AuthorPlanFeature {
	if l == nil {
		return nil
	}
	return &model.AuthorPlanFeature{
		Id:                 l.Id,
		OwnerId:            l.OwnerId.UUID(),
		FeatureId:          l.FeatureId,
		PlanId:             l.PlanId,
		AuthorPlanId:       l.AuthorPlanId,
		FeatureName:        l.FeatureName,
		FeatureDescription: l.FeatureDescription,
		Rate:               l.Rate,
		Currency:           l.Currency,
		Status:             string(l.Status),
		IsActive:           l.IsActive,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func (m *CartMapper) ToEntities(models []*model.AuthorPlanFeature) []*entity.AuthorPlanFeature {
	entities := make([]*entity.AuthorPlanFeature, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
