package service

import (
	"context"
	"time"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/logger"
	pkgEvents "ebook-studio-be/pkg/events"
)

// EventBus is satisfied by pkg/nats.Publisher.
type EventBus interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// DomainEventPublisher emits the entitlement lifecycle to the broker.
// Publishing failures are logged, never returned.
type DomainEventPublisher interface {
	EntitlementConfirmed(ctx context.Context, plan *entity.AuthorPlan, bill *entity.AuthorBill, lineCount int)
	SubscriptionCancelled(ctx context.Context, plan *entity.AuthorPlan)
	BillSettled(ctx context.Context, bill *entity.AuthorBill)
}

type natsDomainPublisher struct {
	bus    EventBus
	logger logger.ILogger
}

// NewDomainEventPublisher accepts a nil bus; events are then dropped.
func NewDomainEventPublisher(bus EventBus, logger logger.ILogger) DomainEventPublisher {
	return &natsDomainPublisher{bus: bus, logger: logger}
}

func (p *natsDomainPublisher) publish(ctx context.Context, evt pkgEvents.BaseEvent) {
	if p.bus == nil {
		return
	}
	if err := p.bus.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+evt.Type+" event", map[string]interface{}{
			"error":    err.Error(),
			"event_id": evt.Id,
		})
	}
}

func (p *natsDomainPublisher) EntitlementConfirmed(ctx context.Context, plan *entity.AuthorPlan, bill *entity.AuthorBill, lineCount int) {
	now := time.Now()
	p.publish(ctx, pkgEvents.NewEvent(pkgEvents.EntitlementConfirmed, map[string]interface{}{
		"owner_id":       plan.OwnerId.String(),
		"author_plan_id": plan.Id,
		"plan_id":        plan.PlanId,
		"plan_name":      plan.PlanName,
		"bill_id":        bill.Id,
		"total":          bill.Total.StringFixed(2),
		"currency":       bill.Currency,
		"feature_count":  lineCount,
		"entity_type":    "author_plan",
		"entity_id":      plan.Id.String(),
		"occurred_at":    now,
	}, now))
}

func (p *natsDomainPublisher) SubscriptionCancelled(ctx context.Context, plan *entity.AuthorPlan) {
	now := time.Now()
	reason := ""
	if plan.CancellationReason != nil {
		reason = *plan.CancellationReason
	}
	p.publish(ctx, pkgEvents.NewEvent(pkgEvents.SubscriptionCancelled, map[string]interface{}{
		"owner_id":       plan.OwnerId.String(),
		"author_plan_id": plan.Id,
		"plan_name":      plan.PlanName,
		"reason":         reason,
		"entity_type":    "author_plan",
		"entity_id":      plan.Id.String(),
		"occurred_at":    now,
	}, now))
}

func (p *natsDomainPublisher) BillSettled(ctx context.Context, bill *entity.AuthorBill) {
	now := time.Now()
	eventType := pkgEvents.BillPaid
	if bill.Status == entity.BillStatusCancelled {
		eventType = pkgEvents.BillCancelled
	}
	p.publish(ctx, pkgEvents.NewEvent(eventType, map[string]interface{}{
		"owner_id":    bill.OwnerId.String(),
		"bill_id":     bill.Id,
		"total":       bill.Total.StringFixed(2),
		"currency":    bill.Currency,
		"status":      string(bill.Status),
		"entity_type": "author_bill",
		"entity_id":   bill.Id.String(),
		"occurred_at": now,
	}, now))
}
