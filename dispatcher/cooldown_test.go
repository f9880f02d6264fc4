package dispatcher_test

import (
	"testing"
	"time"

	"github.com/katalvlaran/mazechase/dispatcher"
	"github.com/stretchr/testify/assert"
)

func TestCooldown(t *testing.T) {
	c := dispatcher.NewCooldown(100*time.Millisecond, 300*time.Millisecond)
	assert.Equal(t, dispatcher.Deactivated, c.State())

	c.Tick(time.Second)
	assert.Equal(t, dispatcher.Deactivated, c.State(), "ticking an idle cooldown is a no-op")

	c.Start()
	assert.Equal(t, dispatcher.Running, c.State())
	assert.Equal(t, 100*time.Millisecond, c.Remaining())
	c.Tick(60 * time.Millisecond)
	assert.Equal(t, dispatcher.Running, c.State())
	c.Tick(40 * time.Millisecond)
	assert.Equal(t, dispatcher.Deactivated, c.State())
	assert.Zero(t, c.Remaining())

	c.Pause()
	assert.Equal(t, dispatcher.Paused, c.State())
	assert.Equal(t, 300*time.Millisecond, c.Remaining())
	c.Start()
	assert.Equal(t, dispatcher.Running, c.State(), "a new phase replaces the old one")
}

func TestCooldown_ZeroPhases(t *testing.T) {
	c := dispatcher.NewCooldown(0, 0)
	c.Start()
	assert.Equal(t, dispatcher.Deactivated, c.State())
	c.Pause()
	assert.Equal(t, dispatcher.Deactivated, c.State())
}

func TestCooldownState_String(t *testing.T) {
	for s, want := range map[dispatcher.CooldownState]string{
		dispatcher.Deactivated:       "deactivated",
		dispatcher.Running:           "running",
		dispatcher.Paused:            "paused",
		dispatcher.CooldownState(42): "unknown",
	} {
		assert.Equal(t, want, s.String())
	}
}
