package app

import (
	"context"
	"sync"

	"github.com/dshills/code4food/internal/event"
	"github.com/dshills/code4food/internal/event/events"
	"github.com/dshills/code4food/internal/event/topic"
)

// TopicPetAll matches every pet event.
const TopicPetAll topic.Topic = "pet.**"

// subscriptionManager manages event bus subscriptions for the application.
type subscriptionManager struct {
	mu            sync.Mutex
	subscriptions []event.Subscription
	app           *Application
}

func newSubscriptionManager(app *Application) *subscriptionManager {
	return &subscriptionManager{app: app}
}

// setup registers all event subscriptions.
func (sm *subscriptionManager) setup() error {
	sub, err := sm.app.bus.Subscribe(TopicPetAll, sm.logPetEvent)
	if err != nil {
		return err
	}
	sm.add(sub)
	return nil
}

// logPetEvent records pet lifecycle events in the log file.
func (sm *subscriptionManager) logPetEvent(_ context.Context, ev any) error {
	p, ok := event.Payload[events.PetChanged](ev)
	if !ok {
		return nil
	}
	var t topic.Topic
	if tp, ok := ev.(event.TopicProvider); ok {
		t = tp.EventTopic()
	}
	sm.app.log.Info("pet event", "topic", t.String(), "pet", p.Name, "id", p.PetID, "satiety", p.Satiety, "amount", p.Amount)
	return nil
}

func (sm *subscriptionManager) add(sub event.Subscription) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.subscriptions = append(sm.subscriptions, sub)
}

// unsubscribeAll cancels every subscription.
func (sm *subscriptionManager) unsubscribeAll() {
	sm.mu.Lock()
	subs := sm.subscriptions
	sm.subscriptions = nil
	sm.mu.Unlock()

	for _, sub := range subs {
		_ = sm.app.bus.Unsubscribe(sub)
	}
}
