package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ebook-studio-be/internal/config"
	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/locker"
	"ebook-studio-be/internal/pkg/logger"
	"ebook-studio-be/internal/pkg/payment"
	"ebook-studio-be/internal/repository/specification"
	"ebook-studio-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ConfirmCommand struct {
	Owner          entity.OwnerID
	Email          string
	PlanId         uuid.UUID
	IdempotencyKey string
}

type ConfirmResult struct {
	AuthorPlan *entity.AuthorPlan
	Bill       *entity.AuthorBill
	Lines      []*entity.AuthorPlanFeature
	Redirect   *string
}

// IdempotencyStore caches confirm results per owner and client key.
type IdempotencyStore interface {
	Get(scope, key string) (interface{}, bool)
	Save(scope, key string, value interface{})
}

// EntitlementService turns the open cart plus a chosen plan into a billed subscription.
type EntitlementService interface {
	Confirm(ctx context.Context, cmd ConfirmCommand) (*ConfirmResult, error)
}

type entitlementService struct {
	uowFactory  unitofwork.RepositoryFactory
	locker      locker.Locker
	idempotency IdempotencyStore
	processor   payment.Processor
	events      DomainEventPublisher
	billIssued  IPublisherService
	logger      logger.ILogger
	cfg         config.BillingConfig
	now         func() time.Time
}

func NewEntitlementService(
	uowFactory unitofwork.RepositoryFactory,
	locker locker.Locker,
	idempotency IdempotencyStore,
	processor payment.Processor,
	events DomainEventPublisher,
	billIssued IPublisherService,
	logger logger.ILogger,
	cfg config.BillingConfig,
) EntitlementService {
	return &entitlementService{
		uowFactory:  uowFactory,
		locker:      locker,
		idempotency: idempotency,
		processor:   processor,
		events:      events,
		billIssued:  billIssued,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (s *entitlementService) cached(cmd ConfirmCommand) (*ConfirmResult, error) {
	if cmd.IdempotencyKey == "" {
		return nil, nil
	}
	v, ok := s.idempotency.Get(cmd.Owner.String(), cmd.IdempotencyKey)
	if !ok {
		return nil, nil
	}
	r, ok := v.(*ConfirmResult)
	if !ok {
		return nil, nil
	}
	if r.AuthorPlan == nil || r.AuthorPlan.PlanId != cmd.PlanId {
		return nil, ErrIdempotencyKeyReused
	}
	return r, nil
}

func (s *entitlementService) Confirm(ctx context.Context, cmd ConfirmCommand) (*ConfirmResult, error) {
	if cmd.Owner.IsNil() || cmd.PlanId == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if r, err := s.cached(cmd); r != nil || err != nil {
		return r, err
	}

	release, err := s.locker.Acquire(ctx, "confirm:"+cmd.Owner.String(), s.cfg.ConfirmLockTTL)
	switch {
	case errors.Is(err, locker.ErrLockBusy):
		return nil, ErrConfirmationInProgress
	case err != nil:
		// The advisory lock inside the transaction still serializes the owner.
		s.logger.Warn("ENTITLEMENT", "Distributed lock unavailable", map[string]interface{}{
			"owner_id": cmd.Owner.String(),
			"error":    err.Error(),
		})
	default:
		defer func() {
			if err := release(context.Background()); err != nil {
				s.logger.Warn("ENTITLEMENT", "Failed to release confirm lock", map[string]interface{}{
					"owner_id": cmd.Owner.String(),
					"error":    err.Error(),
				})
			}
		}()
	}

	// a request with the same key may have finished while we waited for the lock
	if r, err := s.cached(cmd); r != nil || err != nil {
		return r, err
	}

	result, err := s.migrate(ctx, cmd)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, cmd, result)

	if cmd.IdempotencyKey != "" {
		s.idempotency.Save(cmd.Owner.String(), cmd.IdempotencyKey, result)
	}
	return result, nil
}

// migrate runs every write of a confirmation in one transaction.
func (s *entitlementService) migrate(ctx context.Context, cmd ConfirmCommand) (*ConfirmResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, s.fail("Failed to begin transaction", cmd, err)
	}
	defer uow.Rollback()

	if err := uow.LockOwner(ctx, cmd.Owner); err != nil {
		return nil, s.fail("Failed to lock owner", cmd, err)
	}

	plan, err := uow.PlanRepository().FindOne(ctx,
		specification.ByID{ID: cmd.PlanId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, s.fail("Failed to load plan", cmd, err)
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	now := s.now()

	if s.cfg.ConfirmDedupeWindow > 0 {
		recent, err := uow.AuthorPlanRepository().FindOne(ctx,
			specification.OwnedBy{Owner: cmd.Owner},
			specification.ByPlanID{PlanID: plan.Id},
			specification.ActiveOnly{},
			specification.CreatedAfter{Time: now.Add(-s.cfg.ConfirmDedupeWindow)},
		)
		if err != nil {
			return nil, s.fail("Failed to check recent confirmations", cmd, err)
		}
		if recent != nil {
			return nil, ErrDuplicateConfirmation
		}
	}

	authorPlan := entity.NewAuthorPlan(cmd.Owner, plan, now)
	if err := uow.AuthorPlanRepository().Create(ctx, authorPlan); err != nil {
		return nil, s.fail("Failed to create author plan", cmd, err)
	}

	lines, err := uow.CartRepository().FindAll(ctx, lineScopeSpecs(cmd.Owner, entity.ScopeTemp)...)
	if err != nil {
		return nil, s.fail("Failed to load cart lines", cmd, err)
	}
	for _, line := range lines {
		line.Confirm(plan.Id, authorPlan.Id, now)
		if err := uow.CartRepository().Update(ctx, line); err != nil {
			return nil, s.fail("Failed to confirm cart line", cmd, err)
		}
	}

	bill := newAuthorBill(authorPlan, plan, lines, cmd.Email, s.cfg.Currency)
	if err := uow.BillRepository().Create(ctx, bill); err != nil {
		return nil, s.fail("Failed to create bill", cmd, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, s.fail("Failed to commit confirmation", cmd, err)
	}

	s.logger.Info("ENTITLEMENT", "Plan confirmed", map[string]interface{}{
		"owner_id":       cmd.Owner.String(),
		"plan_id":        plan.Id.String(),
		"author_plan_id": authorPlan.Id.String(),
		"bill_id":        bill.Id.String(),
		"features":       len(lines),
		"total":          bill.Total.StringFixed(2),
	})

	return &ConfirmResult{
		AuthorPlan: authorPlan,
		Bill:       bill,
		Lines:      lines,
	}, nil
}

// afterCommit talks to the outside world. Failures are logged and leave the
// confirmation in place with a Pending bill.
func (s *entitlementService) afterCommit(ctx context.Context, cmd ConfirmCommand, r *ConfirmResult) {
	if s.processor != nil && r.Bill.Status == entity.BillStatusPending {
		session, err := s.processor.CreateCheckout(ctx, s.checkoutRequest(cmd, r))
		if err != nil {
			s.logger.Error("ENTITLEMENT", "Failed to open checkout", map[string]interface{}{
				"bill_id":  r.Bill.Id.String(),
				"provider": s.processor.Name(),
				"error":    err.Error(),
			})
		} else {
			r.Redirect = &session.RedirectURL
			if err := s.attachReference(ctx, r, session.Reference); err != nil {
				s.logger.Error("ENTITLEMENT", "Failed to store payment reference", map[string]interface{}{
					"bill_id":   r.Bill.Id.String(),
					"reference": session.Reference,
					"error":     err.Error(),
				})
			}
		}
	}

	if s.events != nil {
		s.events.EntitlementConfirmed(ctx, r.AuthorPlan, r.Bill, len(r.Lines))
	}

	if s.billIssued != nil && r.Bill.Email != "" {
		msg := dto.BillIssuedMessage{BillId: r.Bill.Id, Email: r.Bill.Email}
		if r.Redirect != nil {
			msg.PaymentLink = *r.Redirect
		}
		payload, err := json.Marshal(msg)
		if err != nil {
			s.logger.Error("ENTITLEMENT", "Failed to encode receipt message", map[string]interface{}{
				"bill_id": r.Bill.Id.String(),
				"error":   err.Error(),
			})
			return
		}
		if err := s.billIssued.Publish(ctx, payload); err != nil {
			s.logger.Error("ENTITLEMENT", "Failed to queue receipt", map[string]interface{}{
				"bill_id": r.Bill.Id.String(),
				"error":   err.Error(),
			})
		}
	}
}

func (s *entitlementService) checkoutRequest(cmd ConfirmCommand, r *ConfirmResult) payment.CheckoutRequest {
	items := make([]payment.CheckoutItem, 0, len(r.Lines)+2)
	items = append(items, payment.CheckoutItem{
		Id:     r.AuthorPlan.PlanId.String(),
		Name:   r.AuthorPlan.PlanName,
		Amount: r.AuthorPlan.Rate,
	})
	for _, l := range r.Lines {
		items = append(items, payment.CheckoutItem{
			Id:     l.FeatureId.String(),
			Name:   l.FeatureName,
			Amount: l.Rate,
		})
	}
	if r.Bill.Tax.GreaterThan(decimal.Zero) {
		items = append(items, payment.CheckoutItem{Id: "tax", Name: "Tax", Amount: r.Bill.Tax})
	}

	key := "confirm-" + r.Bill.Id.String()
	if cmd.IdempotencyKey != "" {
		key = cmd.Owner.String() + "-" + cmd.IdempotencyKey
	}
	return payment.CheckoutRequest{
		BillId:         r.Bill.Id.String(),
		Email:          cmd.Email,
		Currency:       r.Bill.Currency,
		Items:          items,
		IdempotencyKey: key,
	}
}

func (s *entitlementService) attachReference(ctx context.Context, r *ConfirmResult, reference string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	now := s.now()
	r.Bill.PaymentReference = &reference
	r.Bill.UpdatedAt = now
	if err := uow.BillRepository().Update(ctx, r.Bill); err != nil {
		return err
	}
	r.AuthorPlan.PaymentReference = &reference
	r.AuthorPlan.UpdatedAt = now
	if err := uow.AuthorPlanRepository().Update(ctx, r.AuthorPlan); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *entitlementService) fail(message string, cmd ConfirmCommand, err error) error {
	s.logger.Error("ENTITLEMENT", message, map[string]interface{}{
		"owner_id": cmd.Owner.String(),
		"plan_id":  cmd.PlanId.String(),
		"error":    err.Error(),
	})
	return fmt.Errorf("%s: %w", message, err)
}
