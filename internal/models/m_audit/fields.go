package m_audit

// Field name constants for the audit_events table.
// The table is an append-only trail of pricing and budget changes;
// rows are never updated after insert.
const (
	TableName = "audit_events"

	EventID     = "event_id"
	EventType   = "event_type"
	AggregateID = "aggregate_id"
	Payload     = "payload"
	CreatedAt   = "created_at"
)
