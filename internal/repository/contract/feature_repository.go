// FILE: internal/repository/contract/feature_repository.go
// Repository interface for Feature (purchasable catalog)
package contract

import (
	"context"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/repository/specification"
)

type FeatureRepository interface {
	Create(ctx context.Context, feature *entity.Feature) error
	Update(ctx context.Context, feature *entity.Feature) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error)
}
