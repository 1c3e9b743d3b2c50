package repo

import (
	"encoding/json"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/finrecon-service/internal/app/audit/contracts"
	"github.com/light-bringer/finrecon-service/internal/models/m_audit"
)

// AuditRepo implements AuditRepository for Spanner.
type AuditRepo struct {
	client *spanner.Client
	model  *m_audit.Model
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(client *spanner.Client) contracts.AuditRepository {
	return &AuditRepo{
		client: client,
		model:  m_audit.NewModel(),
	}
}

// InsertMut creates a mutation for appending an audit event.
func (r *AuditRepo) InsertMut(event *contracts.AuditEvent) *spanner.Mutation {
	data := &m_audit.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     payloadJSON(event.Payload),
	}

	return r.model.InsertMut(data)
}

// payloadJSON decodes the serialized payload before handing it to the
// JSON column. Passing the string through unchanged would store a quoted
// string literal instead of an object, breaking JSON-path queries over
// audit_events.
func payloadJSON(payload string) spanner.NullJSON {
	if payload == "" {
		return spanner.NullJSON{}
	}
	var value interface{}
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return spanner.NullJSON{}
	}
	return spanner.NullJSON{Value: value, Valid: true}
}

// EnrichEvent converts a domain event to an audit event with metadata.
func (r *AuditRepo) EnrichEvent(event contracts.DomainEvent, payload string) *contracts.AuditEvent {
	return &contracts.AuditEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
	}
}
