package stats

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/search"
	"github.com/sirupsen/logrus"
)

// Sample is the measurement of one search.
type Sample struct {
	RunID     uuid.UUID
	Algorithm string
	Label     string
	Start     string
	Target    string
	Found     bool
	Duration  time.Duration
	// AllocBytes is approximate: the growth of the process-wide
	// runtime.MemStats.TotalAlloc over the search, so allocations of other
	// goroutines running meanwhile are counted too. Zero when MemStats is off.
	AllocBytes uint64
	Expanded   int
	PathLength int
	PathWeight int
	At         time.Time
}

// Sink receives samples.
type Sink interface {
	Record(Sample) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Sample) error

// Record calls f(s).
func (f SinkFunc) Record(s Sample) error { return f(s) }

// Options configures a Monitor.
type Options struct {
	Label    string
	RunID    uuid.UUID
	Sinks    []Sink
	Logger   logrus.FieldLogger
	MemStats bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns a Monitor with a new run ID, memory accounting on
// and no sinks.
func DefaultOptions() Options {
	return Options{RunID: uuid.New(), Logger: logrus.StandardLogger(), MemStats: true}
}

// WithLabel tags samples, e.g. with the name of the agent searching.
func WithLabel(label string) Option { return func(o *Options) { o.Label = label } }

// WithRunID groups samples of several monitors under one run.
func WithRunID(id uuid.UUID) Option { return func(o *Options) { o.RunID = id } }

// WithSink adds a sink.
func WithSink(s Sink) Option {
	return func(o *Options) {
		if s != nil {
			o.Sinks = append(o.Sinks, s)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMemStats turns allocation accounting on or off. It reads
// runtime.MemStats twice per search, which briefly stops the world. The
// figure is only meaningful when searches do not run concurrently.
func WithMemStats(on bool) Option { return func(o *Options) { o.MemStats = on } }

// Monitor is a search.Pathfinder that measures another one.
type Monitor struct {
	inner search.Pathfinder
	name  string
	opts  Options
	log   logrus.FieldLogger

	mu   sync.Mutex
	last Sample
	n    int
}

// NewMonitor wraps pf.
func NewMonitor(pf search.Pathfinder, opts ...Option) *Monitor {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	name := search.NameOf(pf)
	return &Monitor{
		inner: pf,
		name:  name,
		opts:  o,
		log:   o.Logger.WithFields(logrus.Fields{"algorithm": name, "run": o.RunID.String()}),
	}
}

// Name returns the name of the wrapped pathfinder.
func (m *Monitor) Name() string { return m.name }

// RunID returns the run the samples belong to.
func (m *Monitor) RunID() uuid.UUID { return m.opts.RunID }

// Search runs the wrapped pathfinder and records a sample unless it failed.
func (m *Monitor) Search(ctx context.Context, g *maze.Graph, start, target maze.Location) (search.Result, error) {
	var before runtime.MemStats
	if m.opts.MemStats {
		runtime.ReadMemStats(&before)
	}
	began := time.Now()
	res, err := m.inner.Search(ctx, g, start, target)
	elapsed := time.Since(began)
	if err != nil {
		return res, err
	}

	s := Sample{
		RunID:      m.opts.RunID,
		Algorithm:  m.name,
		Label:      m.opts.Label,
		Start:      start.String(),
		Target:     target.String(),
		Found:      res.Found(),
		Duration:   elapsed,
		Expanded:   len(res.Expanded),
		PathLength: len(res.Path),
		PathWeight: res.Weight(),
		At:         began,
	}
	if m.opts.MemStats {
		var after runtime.MemStats
		runtime.ReadMemStats(&after)
		s.AllocBytes = after.TotalAlloc - before.TotalAlloc
	}

	m.mu.Lock()
	m.last, m.n = s, m.n+1
	m.mu.Unlock()

	m.log.WithFields(logrus.Fields{
		"label":    s.Label,
		"found":    s.Found,
		"duration": s.Duration.String(),
		"alloc":    s.AllocBytes,
		"expanded": s.Expanded,
		"length":   s.PathLength,
		"weight":   s.PathWeight,
		"path":     maze.FormatPath(res.Path),
	}).Debug("stats: search")

	for _, sink := range m.opts.Sinks {
		if err := sink.Record(s); err != nil {
			m.log.WithError(err).Warn("stats: sink failed")
		}
	}
	return res, nil
}

// Last returns the most recent sample; ok is false before the first search.
func (m *Monitor) Last() (Sample, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.n > 0
}

// Count returns the number of samples recorded.
func (m *Monitor) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}
