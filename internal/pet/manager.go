package pet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/code4food/internal/event"
	"github.com/dshills/code4food/internal/event/events"
	"github.com/dshills/code4food/internal/event/topic"
	"github.com/dshills/code4food/internal/logging"
)

const (
	noPetText    = "No active pet"
	eatingStatus = "🍽️ Omnomnom"
	eventSource  = "pet"
)

// Manager owns the pet collection, the active pet and every timer that
// acts on them.
type Manager struct {
	host     Host
	settings Settings
	catalog  *Catalog
	clock    Clock
	rng      RandSource
	log      *logging.Logger
	bus      event.Bus

	mu      sync.Mutex
	pets    []*Pet
	active  *Pet
	eating  bool
	typed   int
	started bool

	disposed      bool
	cancelChanges func()

	decay    timerSlot
	typing   timerSlot
	meal     timerSlot
	reminder timerSlot

	outbox []any
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NewManager loads the persisted collection and active pet from the host's
// store. The returned manager is idle until Start is called.
func NewManager(host Host, opts ...Option) (*Manager, error) {
	if host.Store == nil {
		return nil, ErrNoStore
	}
	if host.Status == nil {
		host.Status = nopStatus{}
	}
	if host.Notifier == nil {
		host.Notifier = nopNotifier{}
	}
	if host.Prompter == nil {
		host.Prompter = cancelPrompter{}
	}

	m := &Manager{
		host:     host,
		settings: DefaultSettings(),
		catalog:  DefaultCatalog(),
		clock:    SystemClock{},
		rng:      globalRand{},
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

// activeRef decodes the active pointer. Besides the id string written by
// this package it accepts the full pet record stored by earlier releases.
type activeRef struct {
	ID   string
	Name string
}

func (r *activeRef) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		r.ID = id
		return nil
	}
	var rec struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	r.ID, r.Name = rec.ID, rec.Name
	return nil
}

func (m *Manager) load() error {
	var stored []*Pet
	if _, err := m.host.Store.Get(KeyPets, &stored); err != nil {
		return fmt.Errorf("load pets: %w", err)
	}
	var ref activeRef
	if _, err := m.host.Store.Get(KeyActivePet, &ref); err != nil {
		return fmt.Errorf("load active pet: %w", err)
	}

	migrated := false
	for _, p := range stored {
		if p == nil {
			continue
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
			migrated = true
		}
		p.Satiety = clampSatiety(p.Satiety)
		m.pets = append(m.pets, p)
	}

	m.active = m.resolve(ref)
	if ref.ID == "" && m.active != nil {
		migrated = true
	}

	m.log.Debug("loaded pets", "count", len(m.pets), "active", m.active != nil)

	if migrated {
		if err := m.saveLocked(); err != nil {
			return fmt.Errorf("save migrated pets: %w", err)
		}
	}
	return nil
}

func (m *Manager) resolve(ref activeRef) *Pet {
	if ref.ID != "" {
		for _, p := range m.pets {
			if p.ID == ref.ID {
				return p
			}
		}
	}
	if ref.Name != "" {
		for _, p := range m.pets {
			if p.Name == ref.Name {
				return p
			}
		}
	}
	return nil
}

// Start shows the status item, starts the decay loop and subscribes to
// document changes. Calling Start again is a no-op.
func (m *Manager) Start() error {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return ErrDisposed
	}
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.host.Status.Show()
	m.renderLocked()
	m.schedule(&m.decay, m.settings.DecayPeriod, m.tickLocked)
	m.mu.Unlock()

	if m.host.Changes == nil {
		return nil
	}
	cancel, err := m.host.Changes.OnDidChange(m.handleChanges)
	if err != nil {
		return fmt.Errorf("subscribe to document changes: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		cancel()
		return nil
	}
	m.cancelChanges = cancel
	return nil
}

// Dispose stops every timer, unsubscribes from document changes and
// releases the status item. A feed that is still eating is discarded.
func (m *Manager) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	m.decay.stop()
	m.typing.stop()
	m.meal.stop()
	m.reminder.stop()
	cancel := m.cancelChanges
	m.cancelChanges = nil
	m.host.Status.Dispose()
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.log.Debug("disposed")
}

// Pets returns a copy of the collection.
func (m *Manager) Pets() []Pet {
	m.mu.Lock()
	defer m.mu.Unlock()

	pets := make([]Pet, len(m.pets))
	for i, p := range m.pets {
		pets[i] = *p
	}
	return pets
}

// Active returns a copy of the active pet.
func (m *Manager) Active() (Pet, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return Pet{}, false
	}
	return *m.active, true
}

// Eating reports whether a feed is in progress.
func (m *Manager) Eating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eating
}

// Catalog returns the catalog offered for adoption.
func (m *Manager) Catalog() *Catalog {
	return m.catalog
}

// locked runs fn under the manager lock and publishes queued events once
// the lock is released.
func (m *Manager) locked(fn func()) {
	m.mu.Lock()
	fn()
	out := m.outbox
	m.outbox = nil
	m.mu.Unlock()

	m.publish(out)
}

// schedule arms slot to run fn under the lock after d. fn is skipped when
// the manager was disposed or the slot re-armed or stopped meanwhile.
// Must be called with m.mu held.
func (m *Manager) schedule(slot *timerSlot, d time.Duration, fn func()) {
	slot.gen++
	gen := slot.gen
	slot.timer = m.clock.AfterFunc(d, func() {
		m.locked(func() {
			if m.disposed || slot.gen != gen {
				return
			}
			slot.timer = nil
			fn()
		})
	})
}

func (m *Manager) emit(t topic.Topic, p *Pet, amount float64) {
	if m.bus == nil {
		return
	}
	m.outbox = append(m.outbox, event.NewEvent(t, events.PetChanged{
		PetID:   p.ID,
		Name:    p.Name,
		Satiety: p.Satiety,
		Amount:  amount,
	}, eventSource))
}

func (m *Manager) publish(out []any) {
	for _, ev := range out {
		if err := m.bus.Publish(context.Background(), ev); err != nil && !errors.Is(err, event.ErrBusNotRunning) {
			m.log.Warn("publish pet event failed", "error", err)
		}
	}
}

func (m *Manager) notify(level Level, format string, args ...any) {
	m.host.Notifier.Notify(level, fmt.Sprintf(format, args...))
}

// saveLocked writes the collection and the active pointer.
func (m *Manager) saveLocked() error {
	if err := m.host.Store.Set(KeyPets, m.pets); err != nil {
		return fmt.Errorf("save pets: %w", err)
	}
	return m.saveActiveLocked()
}

func (m *Manager) saveActiveLocked() error {
	var id *string
	if m.active != nil {
		id = &m.active.ID
	}
	if err := m.host.Store.Set(KeyActivePet, id); err != nil {
		return fmt.Errorf("save active pet: %w", err)
	}
	return nil
}

// persistLocked saves from a timer callback, where there is no caller to
// return the error to.
func (m *Manager) persistLocked(reason string) {
	if err := m.saveLocked(); err != nil {
		m.log.Error("persist pets failed", "reason", reason, "error", err)
	}
}

func (m *Manager) renderLocked() {
	status := m.host.Status

	if m.active == nil {
		status.SetText(noPetText)
		status.SetColor("")
		status.SetTooltip("")
		status.SetCommand(CommandAdopt)
		return
	}

	p := *m.active
	band := p.Band()
	status.SetColor(band.Color())
	status.SetCommand(CommandSpeak)

	if m.eating {
		status.SetText(StatusText(p, eatingStatus, m.settings.StatusWidth))
		return
	}

	status.SetTooltip(Tooltip(p))
	status.SetText(StatusText(p, band.String(), m.settings.StatusWidth))
}
