package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/code4food/internal/event/events"
	"github.com/dshills/code4food/internal/event/topic"
)

func startedBus(t *testing.T, opts ...BusOption) Bus {
	t.Helper()
	b := NewBus(opts...)
	require.NoError(t, b.Start())
	return b
}

func TestBusLifecycle(t *testing.T) {
	b := NewBus()
	assert.False(t, b.IsRunning())

	err := b.Publish(context.Background(), NewEvent(events.TopicPetFed, events.PetChanged{}, "test"))
	assert.ErrorIs(t, err, ErrBusNotRunning)

	require.NoError(t, b.Start())
	assert.ErrorIs(t, b.Start(), ErrBusAlreadyRunning)
	require.NoError(t, b.Stop())
	assert.ErrorIs(t, b.Stop(), ErrBusNotRunning)
}

func TestBusSubscribeValidation(t *testing.T) {
	b := startedBus(t)

	_, err := b.Subscribe("pet.fed", nil)
	assert.ErrorIs(t, err, ErrNilHandler)

	_, err = b.Subscribe("", func(context.Context, any) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidTopic)
}

func TestBusDeliversByPattern(t *testing.T) {
	b := startedBus(t)

	var exact, wild, other int
	_, err := b.Subscribe(events.TopicBufferContentChanged, func(_ context.Context, ev any) error {
		p, ok := Payload[events.BufferContentChanged](ev)
		require.True(t, ok)
		assert.Equal(t, "scratch", p.BufferID)
		exact++
		return nil
	})
	require.NoError(t, err)
	_, err = b.Subscribe("buffer.**", func(context.Context, any) error { wild++; return nil })
	require.NoError(t, err)
	_, err = b.Subscribe("pet.*", func(context.Context, any) error { other++; return nil })
	require.NoError(t, err)

	ev := NewEvent(events.TopicBufferContentChanged, events.BufferContentChanged{BufferID: "scratch"}, "test")
	require.NoError(t, b.Publish(context.Background(), ev))

	assert.Equal(t, 1, exact)
	assert.Equal(t, 1, wild)
	assert.Equal(t, 0, other)

	stats := b.Stats()
	assert.Equal(t, uint64(1), stats.EventsPublished)
	assert.Equal(t, uint64(2), stats.EventsDelivered)
	assert.Equal(t, 3, stats.SubscriptionsNow)
}

func TestBusRejectsUntypedEvent(t *testing.T) {
	b := startedBus(t)
	assert.ErrorIs(t, b.Publish(context.Background(), "not an event"), ErrInvalidEvent)
}

func TestBusUnsubscribe(t *testing.T) {
	b := startedBus(t)

	calls := 0
	sub, err := b.Subscribe(events.TopicPetFed, func(context.Context, any) error { calls++; return nil })
	require.NoError(t, err)

	require.NoError(t, b.Unsubscribe(sub))
	assert.False(t, sub.IsActive())
	assert.ErrorIs(t, b.Unsubscribe(sub), ErrSubscriptionNotFound)

	require.NoError(t, b.Publish(context.Background(), NewEvent(events.TopicPetFed, events.PetChanged{}, "test")))
	assert.Zero(t, calls)
}

func TestBusHandlerFailuresDoNotStopDelivery(t *testing.T) {
	var failures []*HandlerError
	b := startedBus(t, WithErrorHandler(func(err *HandlerError) {
		failures = append(failures, err)
	}))

	boom := errors.New("boom")
	_, _ = b.Subscribe("pet.**", func(context.Context, any) error { return boom })
	_, _ = b.Subscribe("pet.**", func(context.Context, any) error { panic("kaboom") })
	delivered := false
	_, _ = b.Subscribe("pet.**", func(context.Context, any) error { delivered = true; return nil })

	require.NoError(t, b.Publish(context.Background(), NewEvent(topic.Topic("pet.hungry"), events.PetChanged{}, "test")))

	assert.True(t, delivered)
	require.Len(t, failures, 2)
	assert.ErrorIs(t, failures[0], boom)
	assert.ErrorIs(t, failures[1], ErrHandlerPanic)

	stats := b.Stats()
	assert.Equal(t, uint64(1), stats.HandlerErrors)
	assert.Equal(t, uint64(1), stats.HandlerPanics)
}

func TestPayloadPointer(t *testing.T) {
	ev := NewEvent(events.TopicPetAdopted, events.PetChanged{Name: "Rex"}, "test")

	p, ok := Payload[events.PetChanged](&ev)
	require.True(t, ok)
	assert.Equal(t, "Rex", p.Name)

	_, ok = Payload[events.BufferContentChanged](ev)
	assert.False(t, ok)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "test", ev.Source)
}
