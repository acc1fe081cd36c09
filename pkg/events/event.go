// Package events defines the event contract shared by the domain layer and
// the outbound publishers. Aggregates record events while they mutate;
// whoever drains them only needs this interface to put them on the wire.
package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is what an aggregate hands to the messaging layer: identity,
// origin, and an already-serialized payload.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
	Payload() []byte
}

// BaseEvent carries the envelope fields every event shares. Concrete events
// embed it and contribute only their payload shape.
type BaseEvent struct {
	eventType     string
	aggregateType string
	payload       []byte
	id            uuid.UUID
	aggregateID   uuid.UUID
	occurredAt    time.Time
}

// NewBaseEvent stamps an event with a fresh ID and the current UTC time.
// The payload is stored as-is; marshaling is the caller's job.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, aggregateType string, payload []byte) BaseEvent {
	return BaseEvent{
		id:            uuid.New(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    time.Now().UTC(),
		payload:       payload,
	}
}

// EventID returns the unique identifier of this occurrence.
func (e BaseEvent) EventID() uuid.UUID { return e.id }

// EventType returns the dotted event type name, e.g. "scan.completed".
func (e BaseEvent) EventType() string { return e.eventType }

// AggregateID identifies the aggregate that recorded the event. Publishers
// key messages on it so per-aggregate ordering survives partitioning.
func (e BaseEvent) AggregateID() uuid.UUID { return e.aggregateID }

// AggregateType names the kind of aggregate behind AggregateID.
func (e BaseEvent) AggregateType() string { return e.aggregateType }

// OccurredAt returns when the event was recorded, in UTC.
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// Payload returns the serialized event body.
func (e BaseEvent) Payload() []byte { return e.payload }
