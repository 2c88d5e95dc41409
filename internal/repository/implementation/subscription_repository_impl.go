package implementation

import (
	"context"
	"errors"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/mapper"
	"ebook-studio-be/internal/model"
	"ebook-studio-be/internal/repository/contract"
	"ebook-studio-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewPlanRepository(db *gorm.DB) contract.PlanRepository {
	return &PlanRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *entity.Plan) error {
	m := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return contract.ErrDuplicate
		}
		return err
	}
	*plan = *r.mapper.PlanToEntity(m)
	return nil
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, plan *entity.Plan) error {
	m := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.PlanToEntity(m)
	return nil
}

func (r *PlanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error) {
	var m model.Plan
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PlanToEntity(&m), nil
}

func (r *PlanRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error) {
	var models []*model.Plan
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	plans := make([]*entity.Plan, 0, len(models))
	for _, m := range models {
		plans = append(plans, r.mapper.PlanToEntity(m))
	}
	return plans, nil
}

type AuthorPlanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewAuthorPlanRepository(db *gorm.DB) contract.AuthorPlanRepository {
	return &AuthorPlanRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *AuthorPlanRepositoryImpl) Create(ctx context.Context, authorPlan *entity.AuthorPlan) error {
	m := r.mapper.AuthorPlanToModel(authorPlan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*authorPlan = *r.mapper.AuthorPlanToEntity(m)
	return nil
}

func (r *AuthorPlanRepositoryImpl) Update(ctx context.Context, authorPlan *entity.AuthorPlan) error {
	m := r.mapper.AuthorPlanToModel(authorPlan)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*authorPlan = *r.mapper.AuthorPlanToEntity(m)
	return nil
}

func (r *AuthorPlanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AuthorPlan, error) {
	var m model.AuthorPlan
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AuthorPlanToEntity(&m), nil
}

func (r *AuthorPlanRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuthorPlan, error) {
	var models []*model.AuthorPlan
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.AuthorPlan, 0, len(models))
	for _, m := range models {
		out = append(out, r.mapper.AuthorPlanToEntity(m))
	}
	return out, nil
}
