package plan

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
	ErrNotFound     = errors.New("plan not found")
	ErrSlugTaken    = errors.New("plan slug already exists")
	ErrInvalidTerms = errors.New("plan price and tax rate must not be negative")
)

// Manager handles plan-related admin operations
type Manager struct {
	currency string
}

// NewManager creates a new plan manager. currency is used when a request omits one.
func NewManager(currency string) *Manager {
	return &Manager{currency: currency}
}

// Create creates a new subscription plan
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreatePlanRequest) (*entity.Plan, error) {
	if req.Price.IsNegative() || req.TaxRate.IsNegative() {
		return nil, ErrInvalidTerms
	}

	existing, err := uow.PlanRepository().FindOne(ctx, specification.BySlug{Slug: req.Slug})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = m.currency
	}

	now := time.Now()
	newPlan := &entity.Plan{
		Id:           uuid.New(),
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		Rate:         req.Price,
		Currency:     currency,
		TaxRate:      req.TaxRate,
		DurationDays: req.DurationDays,
		MaxEbooks:    req.MaxEbooks,
		TierRank:     req.TierRank,
		IsTrial:      req.IsTrial,
		IsActive:     true,
		SortOrder:    req.SortOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.PlanRepository().Create(ctx, newPlan); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	return newPlan, nil
}

// Update updates a subscription plan. Confirmed author plans keep the terms they were bought with.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.UpdatePlanRequest) (*entity.Plan, error) {
	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, ErrInvalidTerms
		}
		plan.Rate = *req.Price
	}
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() {
			return nil, ErrInvalidTerms
		}
		plan.TaxRate = *req.TaxRate
	}
	if req.DurationDays != nil {
		plan.DurationDays = *req.DurationDays
	}
	if req.MaxEbooks != nil {
		plan.MaxEbooks = *req.MaxEbooks
	}
	if req.TierRank != nil {
		plan.TierRank = *req.TierRank
	}

	// Display Settings
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		plan.SortOrder = *req.SortOrder
	}
	plan.UpdatedAt = time.Now()

	if err := uow.PlanRepository().Update(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// FindAll retrieves all subscription plans, archived ones included
func (m *Manager) FindAll(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.Plan, error) {
	return uow.PlanRepository().FindAll(ctx,
		specification.OrderBy{Field: "tier_rank"},
	)
}
