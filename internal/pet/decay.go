package pet

import (
	"math"

	"github.com/dshills/code4food/internal/event/events"
)

// crossing identifies which threshold a satiety drop crossed.
type crossing int

const (
	crossedNone crossing = iota
	crossedHungry
	crossedStarving
)

// thresholdCrossing reports the lowest threshold passed going from prev to
// next. Only downward moves from above a threshold to at or below it count.
func thresholdCrossing(prev, next float64) crossing {
	switch {
	case prev > StarvingThreshold && next <= StarvingThreshold:
		return crossedStarving
	case prev > HungryThreshold && next <= HungryThreshold:
		return crossedHungry
	default:
		return crossedNone
	}
}

func (m *Manager) tickLocked() {
	m.schedule(&m.decay, m.settings.DecayPeriod, m.tickLocked)

	if m.active == nil || m.eating {
		return
	}

	p := m.active
	prev := p.Satiety
	p.Satiety = math.Max(MinSatiety, prev-m.settings.DecayStep)

	switch thresholdCrossing(prev, p.Satiety) {
	case crossedStarving:
		m.notify(LevelWarning, "%s is starving! Please feed them!", p.Label())
		m.emit(events.TopicPetStarving, p, 0)
	case crossedHungry:
		m.notify(LevelInfo, "%s is getting hungry", p.Label())
		m.emit(events.TopicPetHungry, p, 0)
	}

	m.updateReminderLocked()
	m.persistLocked("decay")
	m.renderLocked()
}

// updateReminderLocked starts the starvation reminder when the active pet
// is at zero satiety and cancels it otherwise.
func (m *Manager) updateReminderLocked() {
	if m.active == nil || m.active.Satiety > MinSatiety {
		if m.reminder.pending() {
			m.log.Debug("starvation reminder cancelled")
		}
		m.reminder.stop()
		return
	}
	if m.reminder.pending() {
		return
	}
	m.schedule(&m.reminder, m.settings.StarvingReminderPeriod, m.remindLocked)
}

func (m *Manager) remindLocked() {
	if m.active == nil || m.active.Satiety > MinSatiety {
		return
	}
	m.notify(LevelError, "%s doesn't feel good, please start coding to feed them! 🍽️", m.active.Label())
	m.schedule(&m.reminder, m.settings.StarvingReminderPeriod, m.remindLocked)
}
