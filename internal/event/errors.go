package event

import (
	"errors"
	"fmt"
)

// Bus errors.
var (
	ErrBusNotRunning        = errors.New("event bus is not running")
	ErrBusAlreadyRunning    = errors.New("event bus is already running")
	ErrInvalidEvent         = errors.New("event has no topic")
	ErrInvalidTopic         = errors.New("invalid topic")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNilHandler           = errors.New("nil handler")

	// ErrHandlerPanic wraps the value recovered from a panicking handler.
	ErrHandlerPanic = errors.New("handler panicked")
)

// HandlerError is reported to the bus error handler when a subscriber
// fails.
type HandlerError struct {
	SubscriptionID string
	Topic          string
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("subscription %s on %s: %v", e.SubscriptionID, e.Topic, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
