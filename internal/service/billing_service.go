package service

import (
	"context"
	"fmt"
	"time"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/logger"
	"ebook-studio-be/internal/pkg/payment"
	"ebook-studio-be/internal/repository/specification"
	"ebook-studio-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type BillingService interface {
	Summary(ctx context.Context, owner entity.OwnerID, planId uuid.UUID) (*dto.OrderSummaryResponse, error)
	ListBills(ctx context.Context, owner entity.OwnerID) ([]dto.BillResponse, error)
	// HandlePaymentNotification applies a verified provider callback. Replays are no-ops.
	HandlePaymentNotification(ctx context.Context, n *payment.Notification) error
}

type billingService struct {
	uowFactory unitofwork.RepositoryFactory
	events     DomainEventPublisher
	logger     logger.ILogger
	currency   string
	now        func() time.Time
}

func NewBillingService(uowFactory unitofwork.RepositoryFactory, events DomainEventPublisher, logger logger.ILogger, currency string) BillingService {
	return &billingService{
		uowFactory: uowFactory,
		events:     events,
		logger:     logger,
		currency:   currency,
		now:        time.Now,
	}
}

func (s *billingService) Summary(ctx context.Context, owner entity.OwnerID, planId uuid.UUID) (*dto.OrderSummaryResponse, error) {
	if owner.IsNil() || planId == uuid.Nil {
		return nil, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.PlanRepository().FindOne(ctx,
		specification.ByID{ID: planId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	lines, err := uow.CartRepository().FindAll(ctx, lineScopeSpecs(owner, entity.ScopeTemp)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart lines: %w", err)
	}

	t := computeTotals(plan, lines)
	currency := plan.Currency
	if currency == "" {
		currency = s.currency
	}

	res := &dto.OrderSummaryResponse{
		PlanId:        plan.Id,
		PlanName:      plan.Name,
		PlanPrice:     plan.Rate,
		Items:         make([]dto.CartItemResponse, 0, len(lines)),
		FeaturesTotal: t.FeaturesTotal,
		Subtotal:      t.Subtotal,
		TaxRate:       plan.TaxRate,
		Tax:           t.Tax,
		Total:         t.Total,
		Currency:      currency,
	}
	for _, l := range lines {
		res.Items = append(res.Items, toCartItem(l))
	}
	return res, nil
}

func (s *billingService) ListBills(ctx context.Context, owner entity.OwnerID) ([]dto.BillResponse, error) {
	if owner.IsNil() {
		return nil, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bills, err := uow.BillRepository().FindAll(ctx, specification.OwnedBy{Owner: owner})
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}

	res := make([]dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		res = append(res, toBillResponse(b))
	}
	return res, nil
}

func (s *billingService) HandlePaymentNotification(ctx context.Context, n *payment.Notification) error {
	if n == nil || n.Reference == "" {
		return ErrInvalidInput
	}
	details := map[string]interface{}{
		"provider":  n.Provider,
		"reference": n.Reference,
		"status":    n.RawStatus,
	}

	var target entity.BillStatus
	switch n.Outcome {
	case payment.OutcomePaid:
		target = entity.BillStatusPaid
	case payment.OutcomeFailed:
		target = entity.BillStatusCancelled
	default:
		s.logger.Info("BILLING", "Payment still pending, no action", details)
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	found, err := uow.BillRepository().FindOne(ctx, specification.ByPaymentReference{Reference: n.Reference})
	if err != nil {
		return fmt.Errorf("failed to load bill: %w", err)
	}
	if found == nil {
		s.logger.Warn("BILLING", "Notification for unknown bill", details)
		return ErrBillNotFound
	}

	if err := uow.LockOwner(ctx, found.OwnerId); err != nil {
		return fmt.Errorf("failed to lock owner: %w", err)
	}

	// a cancel may have committed while we waited for the lock
	bill, err := uow.BillRepository().FindOne(ctx,
		specification.ByID{ID: found.Id},
		specification.ForUpdate{},
	)
	if err != nil {
		return fmt.Errorf("failed to reload bill: %w", err)
	}
	if bill == nil {
		return ErrBillNotFound
	}

	if bill.Status != entity.BillStatusPending {
		details["bill_status"] = string(bill.Status)
		s.logger.Info("BILLING", "Bill already settled, skipping", details)
		return nil
	}

	now := s.now()
	bill.Status = target
	bill.UpdatedAt = now
	if target == entity.BillStatusCancelled {
		bill.IsActive = false
	}
	if err := uow.BillRepository().Update(ctx, bill); err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}

	// an unpaid bill takes its subscription down with it
	if target == entity.BillStatusCancelled {
		ap, err := uow.AuthorPlanRepository().FindOne(ctx,
			specification.ByID{ID: bill.AuthorPlanId},
			specification.ActiveOnly{},
		)
		if err != nil {
			return fmt.Errorf("failed to load author plan: %w", err)
		}
		if ap != nil {
			ap.Cancel("payment "+n.RawStatus, now)
			if err := uow.AuthorPlanRepository().Update(ctx, ap); err != nil {
				return fmt.Errorf("failed to cancel author plan: %w", err)
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit notification: %w", err)
	}

	details["bill_id"] = bill.Id.String()
	details["bill_status"] = string(bill.Status)
	s.logger.Info("BILLING", "Bill settled", details)

	if s.events != nil {
		s.events.BillSettled(ctx, bill)
	}
	return nil
}

func toBillResponse(b *entity.AuthorBill) dto.BillResponse {
	features := make([]dto.BilledFeatureResponse, 0, len(b.Features))
	for _, f := range b.Features {
		features = append(features, dto.BilledFeatureResponse{
			FeatureId: f.FeatureId,
			Name:      f.Name,
			Price:     f.Rate,
		})
	}
	return dto.BillResponse{
		Id:               b.Id,
		AuthorPlanId:     b.AuthorPlanId,
		PlanName:         b.PlanName,
		PlanPrice:        b.PlanRate,
		Features:         features,
		Subtotal:         b.Subtotal,
		Discount:         b.Discount,
		Tax:              b.Tax,
		Total:            b.Total,
		Currency:         b.Currency,
		Status:           string(b.Status),
		PaymentReference: b.PaymentReference,
		CreatedAt:        b.CreatedAt,
	}
}
