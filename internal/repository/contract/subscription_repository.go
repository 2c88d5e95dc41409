package contract

import (
	"context"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/repository/specification"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	Update(ctx context.Context, plan *entity.Plan) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error)
}

type AuthorPlanRepository interface {
	Create(ctx context.Context, authorPlan *entity.AuthorPlan) error
	Update(ctx context.Context, authorPlan *entity.AuthorPlan) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AuthorPlan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuthorPlan, error)
}
