package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dshills/code4food/internal/event/topic"
)

// Bus is the event bus interface.
type Bus interface {
	// Publish delivers event to every matching subscription before returning.
	Publish(ctx context.Context, event any) error

	// Subscribe registers fn for events whose topic matches topicPattern.
	Subscribe(topicPattern topic.Topic, fn HandlerFunc) (Subscription, error)

	// Unsubscribe cancels and removes a subscription.
	Unsubscribe(sub Subscription) error

	// Start enables delivery.
	Start() error

	// Stop disables delivery. Subscriptions are kept.
	Stop() error

	// Stats returns delivery counters.
	Stats() Stats

	// IsRunning returns true if the bus is running.
	IsRunning() bool
}

// Stats contains bus delivery counters.
type Stats struct {
	EventsPublished  uint64
	EventsDelivered  uint64
	HandlerErrors    uint64
	HandlerPanics    uint64
	SubscriptionsNow int
}

// ErrorHandler is called for every handler error or recovered panic.
type ErrorHandler func(err *HandlerError)

// BusOption configures a bus.
type BusOption func(*bus)

// WithErrorHandler installs a callback for failed deliveries.
func WithErrorHandler(h ErrorHandler) BusOption {
	return func(b *bus) {
		b.onError = h
	}
}

type bus struct {
	mu      sync.RWMutex
	subs    []*subscription
	onError ErrorHandler

	running atomic.Bool

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) Bus {
	b := &bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start starts the event bus.
func (b *bus) Start() error {
	if b.running.Swap(true) {
		return ErrBusAlreadyRunning
	}
	return nil
}

// Stop stops the event bus.
func (b *bus) Stop() error {
	if !b.running.Swap(false) {
		return ErrBusNotRunning
	}
	return nil
}

// IsRunning returns true if the bus is running.
func (b *bus) IsRunning() bool {
	return b.running.Load()
}

// Subscribe registers a handler for a topic pattern.
func (b *bus) Subscribe(topicPattern topic.Topic, fn HandlerFunc) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	if !topicPattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, topicPattern)
	}

	sub := newSubscription(topicPattern, fn)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return sub, nil
}

// Unsubscribe removes a subscription.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.ID() == sub.ID() {
			s.Cancel()
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish sends an event synchronously to all matching subscribers.
func (b *bus) Publish(ctx context.Context, event any) error {
	if !b.running.Load() {
		return ErrBusNotRunning
	}

	tp, ok := event.(TopicProvider)
	if !ok {
		return ErrInvalidEvent
	}
	eventTopic := tp.EventTopic()
	if !eventTopic.IsValid() || eventTopic.IsWildcard() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, eventTopic)
	}

	b.mu.RLock()
	matched := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if eventTopic.Matches(s.pattern) {
			matched = append(matched, s)
		}
	}
	b.mu.RUnlock()

	b.eventsPublished.Add(1)

	for _, s := range matched {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.IsActive() {
			continue
		}
		if err := b.deliver(ctx, s, event); err != nil {
			if b.onError != nil {
				b.onError(&HandlerError{SubscriptionID: s.id, Topic: eventTopic.String(), Err: err})
			}
			continue
		}
		b.eventsDelivered.Add(1)
	}

	return nil
}

func (b *bus) deliver(ctx context.Context, s *subscription, event any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()

	if err := s.handler(ctx, event); err != nil {
		b.handlerErrors.Add(1)
		return err
	}
	return nil
}

// Stats returns delivery counters.
func (b *bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		EventsPublished:  b.eventsPublished.Load(),
		EventsDelivered:  b.eventsDelivered.Load(),
		HandlerErrors:    b.handlerErrors.Load(),
		HandlerPanics:    b.handlerPanics.Load(),
		SubscriptionsNow: n,
	}
}
