package events

import (
	"context"
	"time"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/logger"
	pkgEvents "ebook-studio-be/pkg/events"
)

// Bus is satisfied by pkg/nats.Publisher
type Bus interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// Publisher abstracts event publishing for admin catalog operations
type Publisher interface {
	PublishFeatureChanged(ctx context.Context, action string, f *entity.Feature)
	PublishPlanChanged(ctx context.Context, action string, p *entity.Plan)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher Bus
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher. A nil bus drops events.
func NewNatsPublisher(publisher Bus, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishFeatureChanged emits CATALOG_FEATURE_CHANGED
func (p *NatsPublisher) PublishFeatureChanged(ctx context.Context, action string, f *entity.Feature) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	evt := pkgEvents.NewEvent(pkgEvents.CatalogFeatureChanged, map[string]interface{}{
		"action":      action,
		"feature_id":  f.Id,
		"key":         f.Key,
		"name":        f.Name,
		"rate":        f.Rate.StringFixed(2),
		"is_active":   f.IsActive,
		"entity_type": "feature",
		"entity_id":   f.Id.String(),
		"occurred_at": now,
	}, now)

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish CATALOG_FEATURE_CHANGED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishPlanChanged emits CATALOG_PLAN_CHANGED
func (p *NatsPublisher) PublishPlanChanged(ctx context.Context, action string, pl *entity.Plan) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	evt := pkgEvents.NewEvent(pkgEvents.CatalogPlanChanged, map[string]interface{}{
		"action":      action,
		"plan_id":     pl.Id,
		"slug":        pl.Slug,
		"name":        pl.Name,
		"rate":        pl.Rate.StringFixed(2),
		"tier_rank":   pl.TierRank,
		"is_active":   pl.IsActive,
		"entity_type": "plan",
		"entity_id":   pl.Id.String(),
		"occurred_at": now,
	}, now)

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish CATALOG_PLAN_CHANGED event", map[string]interface{}{"error": err.Error()})
	}
}
