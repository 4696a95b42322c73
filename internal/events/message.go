package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"parts-dispatch/internal/domain"
)

// Message is the wire form of an event on the stream and on user channels.
type Message struct {
	ID            string         `json:"id"`
	EventType     string         `json:"event_type"`
	EntityType    string         `json:"entity_type"`
	EntityID      int64          `json:"entity_id"`
	Payload       map[string]any `json:"payload"`
	TargetUserIDs []int64        `json:"target_user_ids"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

// Marshal encodes an event as a Message.
func Marshal(e domain.Event) ([]byte, error) {
	b, err := json.Marshal(Message{
		ID:            e.ID.String(),
		EventType:     string(e.Type),
		EntityType:    e.EntityType,
		EntityID:      e.EntityID,
		Payload:       e.Payload,
		TargetUserIDs: e.TargetUserIDs,
		OccurredAt:    e.OccurredAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", e.ID, err)
	}
	return b, nil
}

// Unmarshal decodes a Message back into an event.
func Unmarshal(raw []byte) (domain.Event, error) {
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return domain.Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("event id %q: %w", m.ID, err)
	}
	return domain.Event{
		ID:            id,
		Type:          domain.EventType(m.EventType),
		EntityType:    m.EntityType,
		EntityID:      m.EntityID,
		Payload:       m.Payload,
		TargetUserIDs: m.TargetUserIDs,
		OccurredAt:    m.OccurredAt,
	}, nil
}
