package contracts

import (
	"cloud.google.com/go/spanner"
)

// DomainEvent is the shape every bounded context's events share. The
// audit trail only needs the event name and the aggregate it belongs
// to; pricing, sales and budget events all satisfy this structurally.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// AuditEvent represents an enriched domain event ready for persistence.
type AuditEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
}

// AuditRepository defines the interface for audit event persistence.
type AuditRepository interface {
	// InsertMut creates a mutation for appending an audit event
	InsertMut(event *AuditEvent) *spanner.Mutation

	// EnrichEvent converts a domain event to an audit event with metadata
	EnrichEvent(event DomainEvent, payload string) *AuditEvent
}
