package contracts

import (
	"context"
	"encoding/json"
	"time"
)

// EventDTO is a data transfer object for audit trail queries.
type EventDTO struct {
	EventID     string          `json:"eventId"`
	EventType   string          `json:"eventType"`
	AggregateID string          `json:"aggregateId"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListEventsFilter defines filtering options for listing audit events.
type ListEventsFilter struct {
	EventType   string
	AggregateID string
	Limit       int64
}

// EventsReadModel defines the interface for audit trail queries.
type EventsReadModel interface {
	// ListEvents retrieves audit events, most recent first
	ListEvents(ctx context.Context, filter *ListEventsFilter) ([]*EventDTO, error)
}
