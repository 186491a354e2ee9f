package pet

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// manualClock fires timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock *manualClock
	at    time.Duration
	seq   int
	fn    func()
	done  bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{clock: c, at: c.now + d, seq: c.seq, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	c.remove(t)
	return true
}

func (c *manualClock) remove(t *manualTimer) {
	for i, candidate := range c.timers {
		if candidate == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// Advance moves time forward by d, firing due timers in deadline order.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.Slice(c.timers, func(i, j int) bool {
			if c.timers[i].at != c.timers[j].at {
				return c.timers[i].at < c.timers[j].at
			}
			return c.timers[i].seq < c.timers[j].seq
		})
		if len(c.timers) == 0 || c.timers[0].at > target {
			c.now = target
			c.mu.Unlock()
			return
		}
		t := c.timers[0]
		c.timers = c.timers[1:]
		t.done = true
		c.now = t.at
		c.mu.Unlock()

		t.fn()
	}
}

func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// memStore is a JSON-encoding in-memory Store.
type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes map[string]int
	fail   error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, writes: map[string]int{}}
}

func (s *memStore) Get(key string, dst any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (s *memStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	s.writes[key]++
	return nil
}

func (s *memStore) put(t *testing.T, key string, value any) {
	t.Helper()
	raw, err := json.Marshal(value)
	require.NoError(t, err)
	s.data[key] = raw
}

func (s *memStore) raw(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data[key])
}

func (s *memStore) writeCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[key]
}

type fakeStatus struct {
	mu       sync.Mutex
	text     string
	color    string
	tooltip  string
	command  string
	shown    bool
	disposed bool
}

func (s *fakeStatus) SetText(v string)    { s.mu.Lock(); s.text = v; s.mu.Unlock() }
func (s *fakeStatus) SetColor(v string)   { s.mu.Lock(); s.color = v; s.mu.Unlock() }
func (s *fakeStatus) SetTooltip(v string) { s.mu.Lock(); s.tooltip = v; s.mu.Unlock() }
func (s *fakeStatus) SetCommand(v string) { s.mu.Lock(); s.command = v; s.mu.Unlock() }
func (s *fakeStatus) Show()               { s.mu.Lock(); s.shown = true; s.mu.Unlock() }
func (s *fakeStatus) Dispose()            { s.mu.Lock(); s.disposed = true; s.mu.Unlock() }

type note struct {
	level   Level
	message string
}

type fakeNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (n *fakeNotifier) Notify(level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note{level, message})
}

func (n *fakeNotifier) all() []note {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]note(nil), n.notes...)
}

func (n *fakeNotifier) count(level Level) int {
	c := 0
	for _, nt := range n.all() {
		if nt.level == level {
			c++
		}
	}
	return c
}

func (n *fakeNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = nil
}

// scriptedPrompter answers prompts with the configured functions.
type scriptedPrompter struct {
	pick  func(choices []Choice, placeholder string) (Choice, bool, error)
	input func(opts InputOptions) (string, bool, error)

	picked [][]Choice
	inputs []InputOptions
}

func (p *scriptedPrompter) Pick(_ context.Context, choices []Choice, placeholder string) (Choice, bool, error) {
	p.picked = append(p.picked, choices)
	if p.pick == nil {
		return Choice{}, false, nil
	}
	return p.pick(choices, placeholder)
}

func (p *scriptedPrompter) Input(_ context.Context, opts InputOptions) (string, bool, error) {
	p.inputs = append(p.inputs, opts)
	if p.input == nil {
		return "", false, nil
	}
	return p.input(opts)
}

// pickLabel selects the choice whose label equals label.
func pickLabel(label string) func([]Choice, string) (Choice, bool, error) {
	return func(choices []Choice, _ string) (Choice, bool, error) {
		for _, c := range choices {
			if c.Label == label {
				return c, true, nil
			}
		}
		return Choice{}, false, errors.New("no choice labelled " + label)
	}
}

func answer(text string) func(InputOptions) (string, bool, error) {
	return func(InputOptions) (string, bool, error) { return text, true, nil }
}

type fakeChanges struct {
	mu        sync.Mutex
	fn        func(ChangeBatch)
	cancelled bool
}

func (c *fakeChanges) OnDidChange(fn func(ChangeBatch)) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fn = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.cancelled = true
		c.fn = nil
	}, nil
}

func (c *fakeChanges) typeText(texts ...string) {
	c.mu.Lock()
	fn := c.fn
	c.mu.Unlock()
	if fn == nil {
		return
	}
	batch := ChangeBatch{}
	for _, t := range texts {
		batch.Changes = append(batch.Changes, Change{Text: t})
	}
	fn(batch)
}

type fixedRand struct{ n int }

func (r fixedRand) IntN(n int) int { return r.n % n }

// harness wires a manager to fakes.
type harness struct {
	t        *testing.T
	clock    *manualClock
	store    *memStore
	status   *fakeStatus
	notes    *fakeNotifier
	prompter *scriptedPrompter
	changes  *fakeChanges
	m        *Manager
}

func newHarness(t *testing.T, seed func(*memStore), opts ...Option) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		clock:    &manualClock{},
		store:    newMemStore(),
		status:   &fakeStatus{},
		notes:    &fakeNotifier{},
		prompter: &scriptedPrompter{},
		changes:  &fakeChanges{},
	}
	if seed != nil {
		seed(h.store)
	}
	all := append([]Option{WithClock(h.clock), WithRand(fixedRand{})}, opts...)
	m, err := NewManager(Host{
		Store:    h.store,
		Status:   h.status,
		Prompter: h.prompter,
		Notifier: h.notes,
		Changes:  h.changes,
	}, all...)
	require.NoError(t, err)
	h.m = m
	t.Cleanup(m.Dispose)
	return h
}

func (h *harness) start() *harness {
	h.t.Helper()
	require.NoError(h.t, h.m.Start())
	return h
}

// withPet seeds the store with a single active pet.
func withPet(p Pet) func(*memStore) {
	return func(s *memStore) {
		raw, _ := json.Marshal([]Pet{p})
		s.data[KeyPets] = raw
		id, _ := json.Marshal(p.ID)
		s.data[KeyActivePet] = id
	}
}

func rex(satiety float64) Pet {
	return Pet{ID: "rex-id", Name: "Rex", Emoji: "🐕", TypeName: "Dog", Satiety: satiety}
}

func (h *harness) satiety() float64 {
	h.t.Helper()
	p, ok := h.m.Active()
	require.True(h.t, ok, "expected an active pet")
	return p.Satiety
}
