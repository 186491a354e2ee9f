// Package event provides the in-process event bus that connects the editor
// host to plugins.
//
// Events carry a hierarchical topic (see package topic) and a typed payload:
//
//	ev := event.NewEvent(events.TopicBufferContentChanged, payload, "app")
//	_ = bus.Publish(ctx, ev)
//
// Subscriptions use topic patterns with "*" (one segment) and "**" (any
// number of segments). Delivery is synchronous on the publisher's goroutine;
// a panicking handler is recovered and counted, and does not prevent
// delivery to the remaining subscribers.
package event
