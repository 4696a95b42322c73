package events

import "parts-dispatch/internal/domain"

// Outbox collects events produced inside a transaction. Events describing the same fact
// (same type and entity) collapse into one whose targets are the union of both.
// The zero value is ready to use.
type Outbox struct {
	keys  []string
	byKey map[string]domain.Event
}

// Add records e, merging it into an earlier event with the same key.
func (b *Outbox) Add(e domain.Event) {
	if b.byKey == nil {
		b.byKey = make(map[string]domain.Event)
	}
	k := e.Key()
	prev, ok := b.byKey[k]
	if !ok {
		b.keys = append(b.keys, k)
		b.byKey[k] = e
		return
	}
	prev.TargetUserIDs = domain.UniqueIDs(append(append([]int64(nil), prev.TargetUserIDs...), e.TargetUserIDs...))
	if prev.Payload == nil {
		prev.Payload = make(map[string]any, len(e.Payload))
	}
	for key, v := range e.Payload {
		if _, exists := prev.Payload[key]; !exists {
			prev.Payload[key] = v
		}
	}
	b.byKey[k] = prev
}

// Events returns the collected events in first-seen order.
func (b *Outbox) Events() []domain.Event {
	out := make([]domain.Event, 0, len(b.keys))
	for _, k := range b.keys {
		out = append(out, b.byKey[k])
	}
	return out
}

// Len returns the number of distinct events.
func (b *Outbox) Len() int { return len(b.keys) }
