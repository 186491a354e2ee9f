package pet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecayTick(t *testing.T) {
	h := newHarness(t, withPet(rex(50))).start()

	h.clock.Advance(4 * time.Second)
	assert.Equal(t, 50.0, h.satiety())

	h.clock.Advance(time.Second)
	assert.Equal(t, 49.0, h.satiety())

	h.clock.Advance(10 * time.Second)
	assert.Equal(t, 47.0, h.satiety())
	assert.Equal(t, "47%", h.status.tooltip)
	assert.Contains(t, h.store.raw(KeyPets), `"satiety":47`)
}

func TestDecayWithoutActivePet(t *testing.T) {
	h := newHarness(t, nil).start()

	h.clock.Advance(time.Minute)

	assert.Zero(t, h.store.writeCount(KeyPets))
	assert.Equal(t, 1, h.clock.Pending(), "decay loop keeps running")
}

func TestDecayFloorsAtZero(t *testing.T) {
	h := newHarness(t, withPet(rex(1.5))).start()

	h.clock.Advance(5 * time.Second)
	assert.Equal(t, 0.5, h.satiety())
	h.clock.Advance(5 * time.Second)
	assert.Equal(t, 0.0, h.satiety())
	h.clock.Advance(50 * time.Second)
	assert.Equal(t, 0.0, h.satiety())
}

func TestThresholdCrossing(t *testing.T) {
	sequence := []float64{45, 39, 30, 21, 15, 5}

	var got []crossing
	for i := 1; i < len(sequence); i++ {
		got = append(got, thresholdCrossing(sequence[i-1], sequence[i]))
	}

	assert.Equal(t, []crossing{crossedHungry, crossedNone, crossedNone, crossedStarving, crossedNone}, got)

	assert.Equal(t, crossedNone, thresholdCrossing(40, 39), "already hungry")
	assert.Equal(t, crossedHungry, thresholdCrossing(41, 40), "boundary counts as crossed")
	assert.Equal(t, crossedStarving, thresholdCrossing(45, 10), "one drop over both thresholds")
	assert.Equal(t, crossedNone, thresholdCrossing(10, 45), "rising never notifies")
}

func TestDecayNotifiesOncePerCrossing(t *testing.T) {
	h := newHarness(t, withPet(rex(42))).start()

	// 42 -> 18 over 24 ticks.
	h.clock.Advance(24 * 5 * time.Second)
	assert.Equal(t, 18.0, h.satiety())

	notes := h.notes.all()
	require.Len(t, notes, 2)
	assert.Equal(t, note{LevelInfo, "🐕 Rex is getting hungry"}, notes[0])
	assert.Equal(t, note{LevelWarning, "🐕 Rex is starving! Please feed them!"}, notes[1])
}

func TestDecayFrozenWhileEating(t *testing.T) {
	h := newHarness(t, withPet(rex(50)), WithSettings(Settings{
		DecayPeriod:            5 * time.Second,
		DecayStep:              1,
		EatingDuration:         57 * time.Second,
		TypingDebounce:         time.Second,
		TypingPrice:            0.5,
		StarvingReminderPeriod: 30 * time.Second,
		StatusWidth:            20,
	})).start()

	h.m.Feed(10)
	h.clock.Advance(55 * time.Second)
	assert.Equal(t, 50.0, h.satiety(), "eleven ticks while eating change nothing")
	assert.True(t, h.m.Eating())

	h.clock.Advance(3 * time.Second)
	assert.False(t, h.m.Eating())
	assert.Equal(t, 60.0, h.satiety())
}

func TestStarvationReminder(t *testing.T) {
	h := newHarness(t, withPet(rex(1))).start()

	h.clock.Advance(5 * time.Second)
	require.Equal(t, 0.0, h.satiety())
	h.notes.reset()

	h.clock.Advance(30 * time.Second)
	assert.Equal(t, 1, h.notes.count(LevelError))
	assert.Contains(t, h.notes.all()[0].message, "doesn't feel good")

	h.clock.Advance(60 * time.Second)
	assert.Equal(t, 3, h.notes.count(LevelError), "reminder repeats every period")

	h.m.Feed(50)
	h.clock.Advance(2 * time.Second)
	require.Equal(t, 50.0, h.satiety())
	h.notes.reset()

	h.clock.Advance(60 * time.Second)
	assert.Zero(t, h.notes.count(LevelError), "reminder cancelled once fed")
}

func TestStarvationReminderCancelledBySwitch(t *testing.T) {
	h := newHarness(t, func(s *memStore) {
		s.put(t, KeyPets, []Pet{rex(0), {ID: "tom", Name: "Tom", Emoji: "🐈", TypeName: "Cat", Satiety: 90}})
		s.put(t, KeyActivePet, "rex-id")
	}).start()

	h.clock.Advance(5 * time.Second)
	_, err := h.m.SwitchTo("tom")
	require.NoError(t, err)
	h.notes.reset()

	h.clock.Advance(30 * time.Second)
	assert.Zero(t, h.notes.count(LevelError))
}
