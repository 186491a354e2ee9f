package event

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/code4food/internal/event/topic"
)

// HandlerFunc handles a delivered event.
type HandlerFunc func(ctx context.Context, ev any) error

// Subscription represents an active event subscription.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic pattern.
	Topic() topic.Topic

	// IsActive returns true until the subscription is cancelled.
	IsActive() bool

	// Cancel permanently stops delivery to this subscription.
	Cancel()
}

type subscription struct {
	id        string
	pattern   topic.Topic
	handler   HandlerFunc
	cancelled atomic.Bool
}

func newSubscription(pattern topic.Topic, handler HandlerFunc) *subscription {
	return &subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: handler,
	}
}

func (s *subscription) ID() string         { return s.id }
func (s *subscription) Topic() topic.Topic { return s.pattern }
func (s *subscription) IsActive() bool     { return !s.cancelled.Load() }
func (s *subscription) Cancel()            { s.cancelled.Store(true) }
