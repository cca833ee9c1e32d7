package farm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextActionState(t *testing.T) {
	tests := []struct {
		previous, current bool
		want              ActionState
	}{
		{false, false, Idle},
		{true, false, Idle},
		{false, true, JustActivated},
		{true, true, Held},
	}

	for _, tt := range tests {
		got := NextActionState(tt.previous, tt.current)
		assert.Equal(t, tt.want, got, "previous=%v current=%v", tt.previous, tt.current)
	}
}

func TestInputTracker(t *testing.T) {
	var tracker InputTracker

	signals := []bool{false, true, true, true, false, true, false}
	want := []ActionState{Idle, JustActivated, Held, Held, Idle, JustActivated, Idle}

	for i, signal := range signals {
		snapshot := tracker.Next(RawInput{Spawn: signal, Up: i%2 == 0})
		assert.Equal(t, want[i], snapshot.Spawn, "step %d", i)
		assert.Equal(t, i%2 == 0, snapshot.Up, "direction flags pass through")
	}

	t.Run("reset re-arms a held action", func(t *testing.T) {
		var tracker InputTracker
		tracker.Next(RawInput{Spawn: true})
		tracker.Reset()
		assert.Equal(t, JustActivated, tracker.Next(RawInput{Spawn: true}).Spawn)
	})
}

func TestActionStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "just-activated", JustActivated.String())
	assert.Equal(t, "held", Held.String())
	assert.Equal(t, "unknown", ActionState(42).String())
	assert.True(t, Held.Active())
	assert.False(t, Idle.Active())
}

func TestInputTrackerHeld(t *testing.T) {
	var tracker InputTracker
	assert.Equal(t, RawInput{}, tracker.Held())

	tracker.Next(RawInput{Up: true, Spawn: true})
	assert.Equal(t, RawInput{Spawn: true}, tracker.Held(), "movement is released, spawn level kept")

	assert.Equal(t, Held, tracker.Next(tracker.Held()).Spawn)
	assert.Equal(t, Held, tracker.Next(RawInput{Spawn: true}).Spawn)
}
