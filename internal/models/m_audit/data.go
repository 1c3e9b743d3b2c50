package m_audit

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the audit_events table.
type Data struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     spanner.NullJSON // JSON column
	CreatedAt   time.Time
}
