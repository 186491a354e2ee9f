package pet

import (
	"time"

	"github.com/dshills/code4food/internal/event"
	"github.com/dshills/code4food/internal/logging"
)

// Settings holds the tunable rates of the pet.
type Settings struct {
	// DecayPeriod is the time between decay ticks.
	DecayPeriod time.Duration
	// DecayStep is the satiety lost per tick.
	DecayStep float64
	// EatingDuration is how long a feed takes before satiety rises.
	EatingDuration time.Duration
	// TypingDebounce is the quiet period before typed characters become food.
	TypingDebounce time.Duration
	// TypingPrice is the satiety gained per typed character.
	TypingPrice float64
	// StarvingReminderPeriod is the interval of reminders while satiety is 0.
	StarvingReminderPeriod time.Duration
	// StatusWidth is the padded status width excluding the pet's name.
	StatusWidth int
}

// DefaultSettings returns the stock rates.
func DefaultSettings() Settings {
	return Settings{
		DecayPeriod:            5 * time.Second,
		DecayStep:              1,
		EatingDuration:         2 * time.Second,
		TypingDebounce:         time.Second,
		TypingPrice:            0.5,
		StarvingReminderPeriod: 30 * time.Second,
		StatusWidth:            20,
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithSettings replaces the default rates.
func WithSettings(s Settings) Option {
	return func(m *Manager) {
		m.settings = s
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(m *Manager) {
		m.clock = c
	}
}

// WithRand replaces the random source used by Speak.
func WithRand(r RandSource) Option {
	return func(m *Manager) {
		m.rng = r
	}
}

// WithCatalog replaces the built-in catalog.
func WithCatalog(c *Catalog) Option {
	return func(m *Manager) {
		m.catalog = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		m.log = l.WithComponent("pet")
	}
}

// WithEventBus publishes pet events (adopted, switched, fed, hungry,
// starving) on bus.
func WithEventBus(bus event.Bus) Option {
	return func(m *Manager) {
		m.bus = bus
	}
}
