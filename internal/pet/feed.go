package pet

import (
	"unicode/utf8"

	"github.com/dshills/code4food/internal/event/events"
)

// handleChanges accumulates typed characters. The first batch after a quiet
// period arms the debounce timer; later batches only add to the count.
func (m *Manager) handleChanges(batch ChangeBatch) {
	m.locked(func() {
		if m.disposed {
			return
		}
		if len(batch.Changes) == 0 || batch.Changes[0].Text == "" {
			return
		}
		if m.active == nil {
			return
		}

		for _, c := range batch.Changes {
			m.typed += utf8.RuneCountInString(c.Text)
		}

		if m.typing.pending() {
			return
		}
		m.schedule(&m.typing, m.settings.TypingDebounce, m.flushTypingLocked)
	})
}

func (m *Manager) flushTypingLocked() {
	amount := float64(m.typed) * m.settings.TypingPrice
	m.typed = 0
	m.log.Debug("typing converted to food", "amount", amount)
	m.feedLocked(amount)
}

// Feed starts an eating delay after which the active pet's satiety rises by
// amount. It is dropped when no pet is active or the pet is already eating.
func (m *Manager) Feed(amount float64) {
	m.locked(func() {
		if m.disposed {
			return
		}
		m.feedLocked(amount)
	})
}

func (m *Manager) feedLocked(amount float64) {
	if m.active == nil || m.eating {
		return
	}

	m.eating = true
	m.renderLocked()
	m.schedule(&m.meal, m.settings.EatingDuration, func() {
		m.finishMealLocked(amount)
	})
}

func (m *Manager) finishMealLocked(amount float64) {
	m.eating = false

	if m.active == nil {
		m.renderLocked()
		return
	}

	p := m.active
	p.Satiety = clampSatiety(p.Satiety + amount)
	m.emit(events.TopicPetFed, p, amount)

	m.updateReminderLocked()
	m.persistLocked("feed")
	m.renderLocked()
}
