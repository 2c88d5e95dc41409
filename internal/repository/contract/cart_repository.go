package contract

import (
	"context"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/repository/specification"

	"github.com/shopspring/decimal"
)

// CartRepository stores AuthorPlanFeature lines, both temp and confirmed.
type CartRepository interface {
	// Create returns ErrDuplicate when the owner already holds a temp line for the feature.
	Create(ctx context.Context, line *entity.AuthorPlanFeature) error
	Update(ctx context.Context, line *entity.AuthorPlanFeature) error
	Delete(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AuthorPlanFeature, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuthorPlanFeature, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SumRate(ctx context.Context, specs ...specification.Specification) (decimal.Decimal, error)
}
