package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/mazechase/navigator"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultWorkers is the size of the search worker pool.
	DefaultWorkers = 4
	// DefaultRefreshInterval is how often the target position is re-resolved.
	DefaultRefreshInterval = 2000 * time.Millisecond
	// DefaultQueueSize is the capacity of the job queue.
	DefaultQueueSize = 64
	// DefaultCooldownRun is how long a rerouted listener is left alone.
	DefaultCooldownRun = 1500 * time.Millisecond
	// DefaultCooldownPause is how long to wait after a reroute found nothing.
	DefaultCooldownPause = 3000 * time.Millisecond
)

// Options configures a Dispatcher.
type Options struct {
	Workers         int
	RefreshInterval time.Duration
	QueueSize       int
	Navigator       *navigator.Navigator
	Logger          logrus.FieldLogger
	CooldownRun     time.Duration
	CooldownPause   time.Duration
	Context         context.Context

	err error
}

// Option mutates Options. Invalid values surface as ErrOptionViolation from New.
type Option func(*Options)

// DefaultOptions returns the defaults listed in the constants above.
func DefaultOptions() Options {
	return Options{
		Workers:         DefaultWorkers,
		RefreshInterval: DefaultRefreshInterval,
		QueueSize:       DefaultQueueSize,
		Logger:          logrus.StandardLogger(),
		CooldownRun:     DefaultCooldownRun,
		CooldownPause:   DefaultCooldownPause,
		Context:         context.Background(),
	}
}

// WithWorkers sets the pool size; n must be ≥ 1.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers must be ≥ 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithRefreshInterval sets the target refresh cadence; d must be positive.
func WithRefreshInterval(d time.Duration) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: refresh interval must be positive (%v)", ErrOptionViolation, d)
			return
		}
		o.RefreshInterval = d
	}
}

// WithQueueSize sets the job queue capacity; n must be ≥ 1.
func WithQueueSize(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: queue size must be ≥ 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.QueueSize = n
	}
}

// WithNavigator shares nv instead of building one over the graph.
func WithNavigator(nv *navigator.Navigator) Option {
	return func(o *Options) { o.Navigator = nv }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithCooldown sets the run and pause durations of conflict cooldowns.
// Zero disables the respective phase.
func WithCooldown(run, pause time.Duration) Option {
	return func(o *Options) {
		if run < 0 || pause < 0 {
			o.err = fmt.Errorf("%w: cooldown cannot be negative (%v, %v)", ErrOptionViolation, run, pause)
			return
		}
		o.CooldownRun, o.CooldownPause = run, pause
	}
}

// WithContext sets the parent of every search context. Cancelling it
// aborts searches in flight; Close is still required to stop the workers.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Context = ctx
		}
	}
}
