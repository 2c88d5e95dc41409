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

	"gorm.io/gorm"
)

type BillRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BillingMapper
}

func NewBillRepository(db *gorm.DB) contract.BillRepository {
	return &BillRepositoryImpl{
		db:     db,
		mapper: mapper.NewBillingMapper(),
	}
}

func (r *BillRepositoryImpl) Create(ctx context.Context, bill *entity.AuthorBill) error {
	m, err := r.mapper.ToModel(bill)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	created, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*bill = *created
	return nil
}

func (r *BillRepositoryImpl) Update(ctx context.Context, bill *entity.AuthorBill) error {
	m, err := r.mapper.ToModel(bill)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *BillRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AuthorBill, error) {
	var m model.AuthorBill
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *BillRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuthorBill, error) {
	var models []*model.AuthorBill
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	bills := make([]*entity.AuthorBill, 0, len(models))
	for _, m := range models {
		b, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, nil
}
