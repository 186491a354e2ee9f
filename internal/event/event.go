package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/code4food/internal/event/topic"
)

// Event is a typed payload published under a topic.
type Event[T any] struct {
	Topic   topic.Topic
	Payload T

	// ID is unique per published event.
	ID     string
	At     time.Time
	Source string
}

// NewEvent stamps payload with a fresh id and the current time.
func NewEvent[T any](t topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Topic:   t,
		Payload: payload,
		ID:      uuid.NewString(),
		At:      time.Now(),
		Source:  source,
	}
}

// EventTopic implements TopicProvider.
func (e Event[T]) EventTopic() topic.Topic {
	return e.Topic
}

// TopicProvider is what the bus needs from a published value.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// Payload extracts a T from an Event[T] or *Event[T] passed as any.
func Payload[T any](ev any) (T, bool) {
	var zero T
	switch e := ev.(type) {
	case Event[T]:
		return e.Payload, true
	case *Event[T]:
		if e == nil {
			return zero, false
		}
		return e.Payload, true
	default:
		return zero, false
	}
}
