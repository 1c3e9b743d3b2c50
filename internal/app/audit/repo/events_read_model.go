package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/finrecon-service/internal/app/audit/contracts"
	"github.com/light-bringer/finrecon-service/internal/models/m_audit"
	"github.com/light-bringer/finrecon-service/internal/pkg/query"
)

const defaultEventLimit = 100

// EventsReadModel implements the EventsReadModel interface for Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) contracts.EventsReadModel {
	return &EventsReadModel{
		client: client,
	}
}

// ListEvents retrieves events from the audit_events table, most recent first.
func (r *EventsReadModel) ListEvents(ctx context.Context, filter *contracts.ListEventsFilter) ([]*contracts.EventDTO, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}

	builder := query.From(m_audit.TableName).
		Select(m_audit.EventID, m_audit.EventType, m_audit.AggregateID, m_audit.Payload, m_audit.CreatedAt).
		OrderBy(m_audit.CreatedAt, query.Desc).
		Limit(limit)

	if filter.EventType != "" {
		builder = builder.Where(query.Eq(m_audit.EventType, filter.EventType))
	}
	if filter.AggregateID != "" {
		builder = builder.Where(query.Eq(m_audit.AggregateID, filter.AggregateID))
	}

	iter := r.client.Single().Query(ctx, builder.Build())
	defer iter.Stop()

	var events []*contracts.EventDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate audit events: %w", err)
		}

		var data m_audit.Data
		if err := row.Columns(
			&data.EventID,
			&data.EventType,
			&data.AggregateID,
			&data.Payload,
			&data.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}

		dto := &contracts.EventDTO{
			EventID:     data.EventID,
			EventType:   data.EventType,
			AggregateID: data.AggregateID,
			CreatedAt:   data.CreatedAt,
		}
		if data.Payload.Valid {
			raw, err := json.Marshal(data.Payload.Value)
			if err != nil {
				return nil, fmt.Errorf("failed to encode audit payload: %w", err)
			}
			dto.Payload = raw
		}

		events = append(events, dto)
	}

	return events, nil
}
