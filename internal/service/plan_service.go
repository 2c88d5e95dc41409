// Service for plans, the owner's subscription and e-book allowance checks
package service

import (
	"context"
	"fmt"
	"time"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/logger"
	"ebook-studio-be/internal/repository/specification"
	"ebook-studio-be/internal/repository/unitofwork"
	"ebook-studio-be/pkg/admin/mapper"
)

type PlanService interface {
	// Public
	ListPlans(ctx context.Context) ([]dto.PlanResponse, error)

	// Author
	GetStatus(ctx context.Context, owner entity.OwnerID) (*dto.SubscriptionStatusResponse, error)
	Cancel(ctx context.Context, owner entity.OwnerID, reason string) (*dto.CancelSubscriptionResponse, error)
	// CheckCanCreateBook returns the current author plan when the allowance has room.
	CheckCanCreateBook(ctx context.Context, owner entity.OwnerID) (*entity.AuthorPlan, error)
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	events     DomainEventPublisher
	logger     logger.ILogger
	now        func() time.Time
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, events DomainEventPublisher, logger logger.ILogger) PlanService {
	return &planService{
		uowFactory: uowFactory,
		events:     events,
		logger:     logger,
		now:        time.Now,
	}
}

// ListPlans returns active plans, cheapest first.
func (s *planService) ListPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := uow.PlanRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "rate"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}

	res := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, mapper.PlanToResponse(p))
	}
	return res, nil
}

// currentAuthorPlan finds the newest active, unexpired author plan.
func currentAuthorPlan(ctx context.Context, uow unitofwork.UnitOfWork, owner entity.OwnerID, now time.Time) (*entity.AuthorPlan, error) {
	plans, err := uow.AuthorPlanRepository().FindAll(ctx,
		specification.OwnedBy{Owner: owner},
		specification.ActiveOnly{},
		specification.CurrentAt{At: now},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if p.IsCurrent(now) {
			return p, nil
		}
	}
	return nil, nil
}

func (s *planService) GetStatus(ctx context.Context, owner entity.OwnerID) (*dto.SubscriptionStatusResponse, error) {
	if owner.IsNil() {
		return nil, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()

	trial, err := uow.AuthorPlanRepository().FindOne(ctx, specification.OwnedBy{Owner: owner})
	if err != nil {
		return nil, fmt.Errorf("failed to load author plans: %w", err)
	}

	res := &dto.SubscriptionStatusResponse{
		TrialUsed: trial != nil && trial.TrialUsed,
		Features:  []dto.CartItemResponse{},
	}

	current, err := currentAuthorPlan(ctx, uow, owner, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load current plan: %w", err)
	}
	if current == nil {
		return res, nil
	}

	lines, err := uow.CartRepository().FindAll(ctx,
		specification.OwnedBy{Owner: owner},
		specification.ByAuthorPlanID{AuthorPlanID: current.Id},
		specification.ByLineStatus{Status: entity.LineStatusConfirmed},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan features: %w", err)
	}

	used, err := uow.BookRepository().Count(ctx,
		specification.OwnedBy{Owner: owner},
		specification.CreatedAfter{Time: current.StartAt},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	res.Active = true
	res.AuthorPlanId = &current.Id
	res.PlanId = &current.PlanId
	res.PlanName = current.PlanName
	res.StartAt = &current.StartAt
	res.EndAt = &current.EndAt
	res.MaxEbooks = current.MaxEbooks
	res.EbooksUsed = used
	for _, l := range lines {
		res.Features = append(res.Features, toCartItem(l))
	}
	return res, nil
}

// Cancel deactivates the current plan and voids its open bill. Nothing is deleted.
func (s *planService) Cancel(ctx context.Context, owner entity.OwnerID, reason string) (*dto.CancelSubscriptionResponse, error) {
	if owner.IsNil() || reason == "" {
		return nil, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.LockOwner(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to lock owner: %w", err)
	}

	now := s.now()
	current, err := currentAuthorPlan(ctx, uow, owner, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load current plan: %w", err)
	}
	if current == nil {
		return nil, ErrNoActiveSubscription
	}

	current.Cancel(reason, now)
	if err := uow.AuthorPlanRepository().Update(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to cancel plan: %w", err)
	}

	res := &dto.CancelSubscriptionResponse{
		AuthorPlanId: current.Id,
		CancelledAt:  now,
	}

	bill, err := uow.BillRepository().FindOne(ctx,
		specification.ByAuthorPlanID{AuthorPlanID: current.Id},
		specification.ByBillStatus{Status: entity.BillStatusPending},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load open bill: %w", err)
	}
	if bill != nil {
		bill.Status = entity.BillStatusCancelled
		bill.IsActive = false
		bill.UpdatedAt = now
		if err := uow.BillRepository().Update(ctx, bill); err != nil {
			return nil, fmt.Errorf("failed to cancel bill: %w", err)
		}
		res.BillId = &bill.Id
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	s.logger.Info("SUBSCRIPTION", "Subscription cancelled", map[string]interface{}{
		"owner_id":       owner.String(),
		"author_plan_id": current.Id.String(),
		"reason":         reason,
	})
	if s.events != nil {
		s.events.SubscriptionCancelled(ctx, current)
	}
	return res, nil
}

func (s *planService) CheckCanCreateBook(ctx context.Context, owner entity.OwnerID) (*entity.AuthorPlan, error) {
	if owner.IsNil() {
		return nil, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	current, err := currentAuthorPlan(ctx, uow, owner, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load current plan: %w", err)
	}
	if current == nil {
		return nil, ErrNoActiveSubscription
	}
	if current.MaxEbooks < 0 {
		return current, nil
	}

	used, err := uow.BookRepository().Count(ctx,
		specification.OwnedBy{Owner: owner},
		specification.CreatedAfter{Time: current.StartAt},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}
	if used >= int64(current.MaxEbooks) {
		return nil, ErrBookLimitReached
	}
	return current, nil
}
