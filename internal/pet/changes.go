package pet

import (
	"context"

	"github.com/dshills/code4food/internal/event"
	"github.com/dshills/code4food/internal/event/events"
)

type busChangeSource struct {
	bus event.Bus
}

// NewBusChangeSource adapts buffer.content.changed events on bus to a
// ChangeSource.
func NewBusChangeSource(bus event.Bus) ChangeSource {
	return busChangeSource{bus: bus}
}

// OnDidChange implements ChangeSource.
func (s busChangeSource) OnDidChange(fn func(ChangeBatch)) (func(), error) {
	sub, err := s.bus.Subscribe(events.TopicBufferContentChanged, func(_ context.Context, ev any) error {
		payload, ok := event.Payload[events.BufferContentChanged](ev)
		if !ok {
			return nil
		}
		batch := ChangeBatch{Changes: make([]Change, len(payload.Changes))}
		for i, c := range payload.Changes {
			batch.Changes[i] = Change{Text: c.Text}
		}
		fn(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = s.bus.Unsubscribe(sub) }, nil
}
