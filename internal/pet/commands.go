package pet

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/code4food/internal/event/events"
)

// Commands returns the command ids Execute understands.
func Commands() []string {
	return []string{CommandAdopt, CommandSwitch, CommandSpeak}
}

// Execute runs the action bound to command.
func (m *Manager) Execute(ctx context.Context, command string) error {
	switch command {
	case CommandAdopt:
		return m.Adopt(ctx)
	case CommandSwitch:
		return m.Switch(ctx)
	case CommandSpeak:
		m.Speak()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

func (m *Manager) isDisposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}

// Adopt asks for a pet type and a name and adopts the result. Cancelling
// either prompt, or entering a blank name, does nothing.
func (m *Manager) Adopt(ctx context.Context) error {
	if m.isDisposed() {
		return ErrDisposed
	}

	kinds := m.catalog.Kinds()
	choices := make([]Choice, len(kinds))
	for i, k := range kinds {
		choices[i] = Choice{ID: k.Name, Label: k.Label()}
	}

	choice, ok, err := m.host.Prompter.Pick(ctx, choices, "Choose pet type")
	if err != nil {
		return fmt.Errorf("choose pet type: %w", err)
	}
	if !ok {
		return nil
	}
	kind, found := m.catalog.Lookup(choice.ID)
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownKind, choice.ID)
	}

	name, ok, err := m.host.Prompter.Input(ctx, InputOptions{
		Placeholder: "Give your pet a name",
		Prompt:      "Name your new " + kind.Name,
	})
	if err != nil {
		return fmt.Errorf("name pet: %w", err)
	}
	if !ok || strings.TrimSpace(name) == "" {
		return nil
	}

	_, err = m.AdoptKind(kind.Name, name)
	return err
}

// AdoptKind adopts a pet of the named kind at full satiety and makes it
// active.
func (m *Manager) AdoptKind(kindName, name string) (Pet, error) {
	kind, ok := m.catalog.Lookup(kindName)
	if !ok {
		return Pet{}, fmt.Errorf("%w: %q", ErrUnknownKind, kindName)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Pet{}, ErrEmptyName
	}

	p := &Pet{
		ID:       uuid.NewString(),
		Name:     name,
		Emoji:    kind.Emoji,
		TypeName: kind.Name,
		Satiety:  MaxSatiety,
	}

	var err error
	m.locked(func() {
		if m.disposed {
			err = ErrDisposed
			return
		}

		m.pets = append(m.pets, p)
		m.active = p
		m.updateReminderLocked()
		err = m.saveLocked()
		m.renderLocked()
		if err != nil {
			return
		}

		m.log.Info("pet adopted", "id", p.ID, "name", p.Name, "type", p.TypeName)
		m.notify(LevelInfo, "Take good care of %s now!", p.Label())
		m.emit(events.TopicPetAdopted, p, 0)
	})
	if err != nil {
		return Pet{}, err
	}
	return *p, nil
}

// Switch lets the user pick the active pet from the collection.
func (m *Manager) Switch(ctx context.Context) error {
	var (
		choices []Choice
		err     error
	)
	m.locked(func() {
		if m.disposed {
			err = ErrDisposed
			return
		}
		if len(m.pets) == 0 {
			m.notify(LevelInfo, "You have no pets yet! Try adopting one first.")
			return
		}
		choices = make([]Choice, len(m.pets))
		for i, p := range m.pets {
			choices[i] = Choice{ID: p.ID, Label: PickerLabel(*p)}
		}
	})
	if err != nil || len(choices) == 0 {
		return err
	}

	choice, ok, err := m.host.Prompter.Pick(ctx, choices, "Choose pet to activate")
	if err != nil {
		return fmt.Errorf("choose pet: %w", err)
	}
	if !ok {
		return nil
	}

	_, err = m.SwitchTo(choice.ID)
	return err
}

// SwitchTo makes the pet with id active. Only the active pointer is
// persisted; the collection is not modified.
func (m *Manager) SwitchTo(id string) (Pet, error) {
	var (
		p   *Pet
		err error
	)
	m.locked(func() {
		if m.disposed {
			err = ErrDisposed
			return
		}
		for _, candidate := range m.pets {
			if candidate.ID == id {
				p = candidate
				break
			}
		}
		if p == nil {
			err = fmt.Errorf("%w: %q", ErrPetNotFound, id)
			return
		}

		m.active = p
		m.updateReminderLocked()
		err = m.saveActiveLocked()
		m.renderLocked()
		if err != nil {
			return
		}

		m.notify(LevelInfo, "Switched to %s", p.Label())
		m.emit(events.TopicPetSwitched, p, 0)
	})
	if err != nil {
		return Pet{}, err
	}
	return *p, nil
}

// Speak shows a random phrase from the active pet.
func (m *Manager) Speak() {
	m.locked(func() {
		if m.disposed || m.active == nil {
			return
		}
		phrase := RandomPhrase(m.catalog, m.active.TypeName, m.rng)
		m.notify(LevelInfo, "%s: %s", m.active.Label(), phrase)
	})
}
