package agent

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/search"
	"github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"
)

const (
	// DefaultSpeed is eight tiles per second, in pixels.
	DefaultSpeed = 8 * maze.DefaultTileSize
	// DefaultWanderSpeed is the Wanderer's default speed in pixels per second.
	DefaultWanderSpeed = 6 * maze.DefaultTileSize
	// MinStep is the smallest move a Pursuer makes once it moves at all.
	MinStep = 2
)

var (
	// ErrNilDispatcher is returned by NewPursuer without a dispatcher.
	ErrNilDispatcher = errors.New("agent: dispatcher is nil")
	// ErrNilNode is returned for a missing spawn node.
	ErrNilNode = errors.New("agent: spawn node is nil")
	// ErrForeignNode is returned for a spawn node outside the graph.
	ErrForeignNode = errors.New("agent: spawn node is not in the graph")
	// ErrOptionViolation is returned for an invalid option.
	ErrOptionViolation = errors.New("agent: invalid option supplied")
)

// Options configures a Pursuer.
type Options struct {
	Name       string
	Speed      float64
	Pathfinder search.Pathfinder
	Logger     logrus.FieldLogger

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns a Pursuer moving at DefaultSpeed with the
// dispatcher's pathfinder.
func DefaultOptions() Options {
	return Options{Name: "pursuer", Speed: DefaultSpeed, Logger: logrus.StandardLogger()}
}

// WithName labels the pursuer in logs and snapshots.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithSpeed sets the speed in pixels per second; it must be positive.
func WithSpeed(pxPerSec float64) Option {
	return func(o *Options) {
		if pxPerSec <= 0 {
			o.err = fmt.Errorf("%w: speed must be positive (%v)", ErrOptionViolation, pxPerSec)
			return
		}
		o.Speed = pxPerSec
	}
}

// WithPathfinder routes this pursuer with pf instead of the dispatcher's default.
func WithPathfinder(pf search.Pathfinder) Option {
	return func(o *Options) { o.Pathfinder = pf }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WanderOptions configures a Wanderer.
type WanderOptions struct {
	Speed  float64
	Rand   *rand.Rand
	Easing ease.TweenFunc

	err error
}

// WanderOption mutates WanderOptions.
type WanderOption func(*WanderOptions)

// DefaultWanderOptions returns linear motion at DefaultWanderSpeed seeded from 1.
func DefaultWanderOptions() WanderOptions {
	return WanderOptions{Speed: DefaultWanderSpeed, Rand: rand.New(rand.NewSource(1)), Easing: ease.Linear}
}

// WithWanderSpeed sets the speed in pixels per second; it must be positive.
func WithWanderSpeed(pxPerSec float64) WanderOption {
	return func(o *WanderOptions) {
		if pxPerSec <= 0 {
			o.err = fmt.Errorf("%w: speed must be positive (%v)", ErrOptionViolation, pxPerSec)
			return
		}
		o.Speed = pxPerSec
	}
}

// WithSeed seeds the choice of the next edge.
func WithSeed(seed int64) WanderOption {
	return func(o *WanderOptions) { o.Rand = rand.New(rand.NewSource(seed)) }
}

// WithRand uses r for the choice of the next edge. r must not be shared
// with other goroutines.
func WithRand(r *rand.Rand) WanderOption {
	return func(o *WanderOptions) {
		if r == nil {
			o.err = fmt.Errorf("%w: nil rand", ErrOptionViolation)
			return
		}
		o.Rand = r
	}
}

// WithEasing sets the easing of each edge traversal.
func WithEasing(fn ease.TweenFunc) WanderOption {
	return func(o *WanderOptions) {
		if fn != nil {
			o.Easing = fn
		}
	}
}
