package service

import (
	"context"
	"errors"
	"fmt"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/pkg/logger"
	"ebook-studio-be/internal/repository/unitofwork"
	adminEvents "ebook-studio-be/pkg/admin/events"
	"ebook-studio-be/pkg/admin/feature"
	"ebook-studio-be/pkg/admin/mapper"
	"ebook-studio-be/pkg/admin/plan"

	"github.com/google/uuid"
)

type IAdminService interface {
	// Feature Catalog Management
	GetAllFeatures(ctx context.Context) ([]dto.FeatureResponse, error)
	CreateFeature(ctx context.Context, req dto.CreateFeatureRequest) (*dto.FeatureResponse, error)
	UpdateFeature(ctx context.Context, id uuid.UUID, req dto.UpdateFeatureRequest) (*dto.FeatureResponse, error)

	// Plan Management
	GetAllPlans(ctx context.Context) ([]dto.PlanResponse, error)
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, req dto.UpdatePlanRequest) (*dto.PlanResponse, error)
}

type adminService struct {
	uowFactory     unitofwork.RepositoryFactory
	logger         logger.ILogger
	planManager    *plan.Manager
	featureManager *feature.Manager
	eventPublisher adminEvents.Publisher
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	planManager *plan.Manager,
	featureManager *feature.Manager,
	eventPublisher adminEvents.Publisher,
) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		logger:         logger,
		planManager:    planManager,
		featureManager: featureManager,
		eventPublisher: eventPublisher,
	}
}

// translateCatalogError maps manager errors onto the service sentinels.
func translateCatalogError(err error) error {
	switch {
	case errors.Is(err, feature.ErrNotFound):
		return ErrFeatureNotFound
	case errors.Is(err, plan.ErrNotFound):
		return ErrPlanNotFound
	case errors.Is(err, feature.ErrKeyTaken), errors.Is(err, plan.ErrSlugTaken):
		return fmt.Errorf("%w: %s", ErrDuplicateKey, err.Error())
	case errors.Is(err, feature.ErrNegativeRate), errors.Is(err, plan.ErrInvalidTerms):
		return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	return err
}

// ============================================================================
// Feature Catalog Management
// ============================================================================

func (s *adminService) GetAllFeatures(ctx context.Context) ([]dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	features, err := s.featureManager.GetAll(ctx, uow)
	if err != nil {
		return nil, err
	}
	return mapper.FeaturesToResponse(features), nil
}

func (s *adminService) CreateFeature(ctx context.Context, req dto.CreateFeatureRequest) (*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	f, err := s.featureManager.Create(ctx, uow, req)
	if err != nil {
		return nil, translateCatalogError(err)
	}

	s.logger.Info("ADMIN", "Feature created", map[string]interface{}{
		"feature_id": f.Id.String(),
		"key":        f.Key,
	})
	if s.eventPublisher != nil {
		s.eventPublisher.PublishFeatureChanged(ctx, "created", f)
	}

	res := mapper.FeatureToResponse(f)
	return &res, nil
}

func (s *adminService) UpdateFeature(ctx context.Context, id uuid.UUID, req dto.UpdateFeatureRequest) (*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	f, err := s.featureManager.Update(ctx, uow, id, req)
	if err != nil {
		return nil, translateCatalogError(err)
	}

	s.logger.Info("ADMIN", "Feature updated", map[string]interface{}{
		"feature_id": f.Id.String(),
	})
	if s.eventPublisher != nil {
		s.eventPublisher.PublishFeatureChanged(ctx, "updated", f)
	}

	res := mapper.FeatureToResponse(f)
	return &res, nil
}

// ============================================================================
// Plan Management
// ============================================================================

func (s *adminService) GetAllPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := s.planManager.FindAll(ctx, uow)
	if err != nil {
		return nil, err
	}
	return mapper.PlansToResponse(plans), nil
}

func (s *adminService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	p, err := s.planManager.Create(ctx, uow, req)
	if err != nil {
		return nil, translateCatalogError(err)
	}

	s.logger.Info("ADMIN", "Plan created", map[string]interface{}{
		"plan_id":   p.Id.String(),
		"slug":      p.Slug,
		"tier_rank": p.TierRank,
	})
	if s.eventPublisher != nil {
		s.eventPublisher.PublishPlanChanged(ctx, "created", p)
	}

	res := mapper.PlanToResponse(p)
	return &res, nil
}

func (s *adminService) UpdatePlan(ctx context.Context, id uuid.UUID, req dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	p, err := s.planManager.Update(ctx, uow, id, req)
	if err != nil {
		return nil, translateCatalogError(err)
	}

	s.logger.Info("ADMIN", "Plan updated", map[string]interface{}{
		"plan_id": p.Id.String(),
	})
	if s.eventPublisher != nil {
		s.eventPublisher.PublishPlanChanged(ctx, "updated", p)
	}

	res := mapper.PlanToResponse(p)
	return &res, nil
}
