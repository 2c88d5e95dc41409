package feature

import (
	"context"
	"errors"
	"strings"
	"time"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/repository/contract"
	"ebook-studio-be/internal/repository/specification"
	"ebook-studio-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("feature not found")
	ErrKeyTaken     = errors.New("feature key already exists")
	ErrNegativeRate = errors.New("feature price must not be negative")
)

// Manager handles feature catalog operations
type Manager struct {
	currency string
}

// NewManager creates a new feature manager. currency is used when a request omits one.
func NewManager(currency string) *Manager {
	return &Manager{currency: currency}
}

// GetAll retrieves the whole catalog, inactive features included
func (m *Manager) GetAll(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.Feature, error) {
	return uow.FeatureRepository().FindAll(ctx, specification.OrderBy{Field: "sort_order"})
}

// Create adds a feature to the catalog
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateFeatureRequest) (*entity.Feature, error) {
	if req.Price.IsNegative() {
		return nil, ErrNegativeRate
	}

	existing, err := uow.FeatureRepository().FindOne(ctx, specification.ByKey{Key: req.Key})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrKeyTaken
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = m.currency
	}

	now := time.Now()
	feature := &entity.Feature{
		Id:          uuid.New(),
		Key:         req.Key,
		Name:        req.Name,
		Description: req.Description,
		Rate:        req.Price,
		Currency:    currency,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uow.FeatureRepository().Create(ctx, feature); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, ErrKeyTaken
		}
		return nil, err
	}

	return feature, nil
}

// Update changes catalog terms. Lines already in carts keep their snapshot.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.UpdateFeatureRequest) (*entity.Feature, error) {
	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		feature.Name = *req.Name
	}
	if req.Description != nil {
		feature.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, ErrNegativeRate
		}
		feature.Rate = *req.Price
	}
	if req.IsActive != nil {
		feature.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		feature.SortOrder = *req.SortOrder
	}
	feature.UpdatedAt = time.Now()

	if err := uow.FeatureRepository().Update(ctx, feature); err != nil {
		return nil, err
	}

	return feature, nil
}
