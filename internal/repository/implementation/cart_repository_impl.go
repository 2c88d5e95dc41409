package implementation

import (
	"context"
	"errors"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/mapper"
	"ebook-studio-be/internal/model"
	"ebook-studio-be/internal/repository/contract"
	"ebook-studio-be/internal/repository/scope"
	"ebook-studio-be/internal/repository/specification"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CartMapper
}

func NewCartRepository(db *gorm.DB) contract.CartRepository {
	return &CartRepositoryImpl{
		db:     db,
		mapper: mapper.NewCartMapper(),
	}
}

func (r *CartRepositoryImpl) Create(ctx context.Context, line *entity.AuthorPlanFeature) error {
	m := r.mapper.ToModel(line)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return contract.ErrDuplicate
		}
		return err
	}
	*line = *r.mapper.ToEntity(m)
	return nil
}

func (r *CartRepositoryImpl) Update(ctx context.Context, line *entity.AuthorPlanFeature) error {
	m := r.mapper.ToModel(line)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*line = *r.mapper.ToEntity(m)
	return nil
}

func (r *CartRepositoryImpl) Delete(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	result := query.Delete(&model.AuthorPlanFeature{})
	return result.RowsAffected, result.Error
}

func (r *CartRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AuthorPlanFeature, error) {
	var m model.AuthorPlanFeature
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CartRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuthorPlanFeature, error) {
	var models []*model.AuthorPlanFeature
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedAsc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CartRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.AuthorPlanFeature{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CartRepositoryImpl) SumRate(ctx context.Context, specs ...specification.Specification) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.AuthorPlanFeature{}), specs...)
	if err := query.Select("COALESCE(SUM(rate), 0) AS total").Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}
