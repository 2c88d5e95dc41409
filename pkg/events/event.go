package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EntitlementConfirmed  = "ENTITLEMENT_CONFIRMED"
	SubscriptionCancelled = "SUBSCRIPTION_CANCELLED"
	BillPaid              = "BILL_PAID"
	BillCancelled         = "BILL_CANCELLED"
	CatalogFeatureChanged = "CATALOG_FEATURE_CHANGED"
	CatalogPlanChanged    = "CATALOG_PLAN_CHANGED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventID is unique per occurrence and used for broker side deduplication.
	EventID() string

	// EventType returns the unique code for this event (e.g., "ENTITLEMENT_CONFIRMED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Id         string
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func NewEvent(eventType string, data map[string]interface{}, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		Id:         uuid.NewString(),
		Type:       eventType,
		Data:       data,
		OccurredAt: occurredAt,
	}
}

func (e BaseEvent) EventID() string {
	return e.Id
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
