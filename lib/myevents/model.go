package myevents

import (
	"encoding/json"
	"fmt"
	"time"
)

type Event interface {
	GetEventTypeName() string
	GetAggregateName() string
}

// EventEnvelope is the unit stored in the outbox and shipped to pubsub.
type EventEnvelope struct {
	UID           string
	CreatedAt     time.Time
	Topic         string
	AggregateUID  string
	EventTypeName string
	EventPayload  string `datastore:",noindex"`
	Published     bool
}

func Wrap(uid string, createdAt time.Time, topic string, event Event) (EventEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("error marshalling %s payload: %s", event.GetEventTypeName(), err)
	}
	return EventEnvelope{
		UID:           uid,
		CreatedAt:     createdAt,
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	}, nil
}

// Unwrap decodes the payload into dest after checking the event type matches.
func (e EventEnvelope) Unwrap(dest Event) error {
	if dest.GetEventTypeName() != e.EventTypeName {
		return fmt.Errorf("envelope %s holds %s, not %s", e.UID, e.EventTypeName, dest.GetEventTypeName())
	}
	err := json.Unmarshal([]byte(e.EventPayload), dest)
	if err != nil {
		return fmt.Errorf("error decoding payload of envelope %s: %s", e.UID, err)
	}
	return nil
}

func (e EventEnvelope) String() string {
	return e.Topic + "/" + e.EventTypeName + "/" + e.AggregateUID
}
