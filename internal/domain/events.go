package domain

import (
	"encoding/json"
	"fmt"
)

// EventType discriminates the change-event variants on the wire.
type EventType string

const (
	EventEntityCreated EventType = "EntityCreated"
	EventEntityUpdated EventType = "EntityUpdated"
	EventEntityDeleted EventType = "EntityDeleted"
)

// Event describes one entity mutation pushed over the realtime channel.
// Created and Updated carry the full player snapshot; Deleted carries only
// the identifier. Events are immutable and live for a single broadcast.
type Event struct {
	Type   EventType
	Player *Player
	ID     int
}

// PlayerCreated builds an EntityCreated event from the post-insert snapshot.
func PlayerCreated(p Player) Event {
	return Event{Type: EventEntityCreated, Player: &p, ID: p.ID}
}

// PlayerUpdated builds an EntityUpdated event from the post-update snapshot.
func PlayerUpdated(p Player) Event {
	return Event{Type: EventEntityUpdated, Player: &p, ID: p.ID}
}

// PlayerDeleted builds an EntityDeleted event carrying the deleted id.
func PlayerDeleted(id int) Event {
	return Event{Type: EventEntityDeleted, ID: id}
}

// eventEnvelope is the wire shape: a discriminator plus a payload field.
type eventEnvelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type deletedPayload struct {
	ID int `json:"id"`
}

// MarshalJSON encodes the active variant as {"type": ..., "payload": ...}.
// A malformed event (unknown type, created/updated without a snapshot) is a
// programming error and fails instead of producing a partial message.
func (e Event) MarshalJSON() ([]byte, error) {
	var payload any
	switch e.Type {
	case EventEntityCreated, EventEntityUpdated:
		if e.Player == nil {
			return nil, fmt.Errorf("event %s has no entity snapshot", e.Type)
		}
		payload = e.Player
	case EventEntityDeleted:
		payload = deletedPayload{ID: e.ID}
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return json.Marshal(eventEnvelope{Type: e.Type, Payload: raw})
}

// UnmarshalJSON decodes the envelope back into the matching variant.
func (e *Event) UnmarshalJSON(data []byte) error {
	var env eventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	switch env.Type {
	case EventEntityCreated, EventEntityUpdated:
		var p Player
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("failed to unmarshal player payload: %w", err)
		}
		*e = Event{Type: env.Type, Player: &p, ID: p.ID}
	case EventEntityDeleted:
		var d deletedPayload
		if err := json.Unmarshal(env.Payload, &d); err != nil {
			return fmt.Errorf("failed to unmarshal deleted payload: %w", err)
		}
		*e = Event{Type: env.Type, ID: d.ID}
	default:
		return fmt.Errorf("unknown event type %q", env.Type)
	}
	return nil
}

// EventSink receives change events for fan-out. Implemented by the broadcaster;
// kept as an interface so the application layer can be tested without sockets.
type EventSink interface {
	Broadcast(event Event) error
}

// NotificationSender hands a push notification off for asynchronous delivery.
// Implementations must never block the caller on delivery.
type NotificationSender interface {
	Enqueue(token, title, body string)
}
