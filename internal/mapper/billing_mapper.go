package mapper

import (
	"encoding/json"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/model"

	"gorm.io/datatypes"
)

type BillingMapper struct{}

func NewBillingMapper() *BillingMapper {
	return &BillingMapper{}
}

func (m *BillingMapper) ToEntity(b *model.AuthorBill) (*entity.AuthorBill, error) {
	if b == nil {
		return nil, nil
	}
	var features []entity.BilledFeature
	if len(b.Features) > 0 {
		if err := json.Unmarshal(b.Features, &features); err != nil {
			return nil, err
		}
	}
	return &entity.AuthorBill{
		Id:               b.Id,
		OwnerId:          entity.OwnerID(b.OwnerId),
		AuthorPlanId:     b.AuthorPlanId,
		Email:            b.Email,
		PlanName:         b.PlanName,
		PlanRate:         b.PlanRate,
		Features:         features,
		Subtotal:         b.Subtotal,
		Discount:         b.Discount,
		Tax:              b.Tax,
		Total:            b.Total,
		Currency:         b.Currency,
		PaymentReference: b.PaymentReference,
		Status:           entity.BillStatus(b.Status),
		IsActive:         b.IsActive,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}, nil
}

func (m *BillingMapper) ToModel(b *entity.AuthorBill) (*model.AuthorBill, error) {
	if b == nil {
		return nil, nil
	}
	features, err := json.Marshal(b.Features)
	if err != nil {
		return nil, err
	}
	return &model.AuthorBill{
		Id:               b.Id,
		OwnerId:          b.OwnerId.UUID(),
		AuthorPlanId:     b.AuthorPlanId,
		Email:            b.Email,
		PlanName:         b.PlanName,
		PlanRate:         b.PlanRate,
		Features:         datatypes.JSON(features),
		Subtotal:         b.Subtotal,
		Discount:         b.Discount,
		Tax:              b.Tax,
		Total:            b.Total,
		Currency:         b.Currency,
		PaymentReference: b.PaymentReference,
		Status:           string(b.Status),
		IsActive:         b.IsActive,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}, nil
}
