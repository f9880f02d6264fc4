package dispatcher

import (
	"sync"
	"time"
)

// CooldownState is the phase of a Cooldown.
type CooldownState uint8

const (
	// Deactivated: the listener may be rerouted.
	Deactivated CooldownState = iota
	// Running: a reroute happened; no new reroute until it elapses.
	Running
	// Paused: a reroute found nothing; wait before trying again.
	Paused
)

func (s CooldownState) String() string {
	switch s {
	case Deactivated:
		return "deactivated"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Cooldown throttles conflict reroutes of one listener. It is safe for
// concurrent use: workers finish reroutes while the main loop ticks.
type Cooldown struct {
	mu        sync.Mutex
	state     CooldownState
	remaining time.Duration
	run       time.Duration
	pause     time.Duration
}

// NewCooldown returns a deactivated Cooldown lasting run after Start and
// pause after Pause.
func NewCooldown(run, pause time.Duration) *Cooldown {
	return &Cooldown{run: run, pause: pause}
}

// State returns the current phase.
func (c *Cooldown) State() CooldownState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Remaining returns the time left in the current phase.
func (c *Cooldown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Start enters Running for the run duration.
func (c *Cooldown) Start() { c.enter(Running, c.run) }

// Pause enters Paused for the pause duration.
func (c *Cooldown) Pause() { c.enter(Paused, c.pause) }

func (c *Cooldown) enter(s CooldownState, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d <= 0 {
		c.state, c.remaining = Deactivated, 0
		return
	}
	c.state, c.remaining = s, d
}

// Tick advances the cooldown by dt and deactivates it when time is up.
func (c *Cooldown) Tick(dt time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Deactivated {
		return
	}
	c.remaining -= dt
	if c.remaining <= 0 {
		c.state, c.remaining = Deactivated, 0
	}
}
