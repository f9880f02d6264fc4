package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/navigator"
	"github.com/katalvlaran/mazechase/search"
	"github.com/sirupsen/logrus"
)

var (
	// ErrGraphNil is returned by New for a nil graph.
	ErrGraphNil = errors.New("dispatcher: graph is nil")
	// ErrPathfinderNil is returned by New for a nil pathfinder.
	ErrPathfinderNil = errors.New("dispatcher: pathfinder is nil")
	// ErrNoRect is returned by New when the target reports no rectangle.
	ErrNoRect = errors.New("dispatcher: target has no rect")
	// ErrOffGraph is returned by New when the target is not on the graph.
	ErrOffGraph = errors.New("dispatcher: target is not in a valid location")
	// ErrOptionViolation is returned by New for an invalid option.
	ErrOptionViolation = errors.New("dispatcher: invalid option supplied")
)

// Tracker reports the top-left corner of the target's tile-sized rectangle.
type Tracker interface {
	TopLeft() (image.Point, bool)
}

// Outcome tells what Request did.
type Outcome uint8

const (
	// Ignored: unknown listener, closed dispatcher, or a request already in
	// flight and this one is not forced.
	Ignored Outcome = iota
	// Arrived: the listener already is where the target is.
	Arrived
	// Direct: the listener stands on one end of the target's edge; the
	// two-node path was delivered without searching.
	Direct
	// Submitted: a search was queued.
	Submitted
	// Dropped: the queue was full; the listener may ask again.
	Dropped
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Arrived:
		return "arrived"
	case Direct:
		return "direct"
	case Submitted:
		return "submitted"
	case Dropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Counters are cumulative dispatcher statistics.
type Counters struct {
	Submitted  int64
	Dropped    int64
	Delivered  int64
	Superseded int64
	Failed     int64
	Trimmed    int64
	Direct     int64
	Reroutes   int64
	Retargets  int64
}

type counters struct {
	submitted, dropped, delivered, superseded, failed atomic.Int64
	trimmed, direct, reroutes, retargets              atomic.Int64
}

// job is one queued search.
type job struct {
	ctx      context.Context
	cancel   context.CancelFunc
	id       ID
	mb       *Mailbox
	gen      uint64
	graph    *maze.Graph
	start    maze.Location
	target   maze.Location
	pf       search.Pathfinder
	cooldown *Cooldown // set for conflict reroutes
}

// Dispatcher computes paths for registered listeners towards one target on
// a fixed-size worker pool and re-targets them as the target moves.
//
// Request, Update, Register and Deregister are meant to be called from the
// game loop; they never block on a search.
type Dispatcher struct {
	mu        sync.Mutex
	g         *maze.Graph
	nav       *navigator.Navigator
	tracker   Tracker
	pf        search.Pathfinder
	log       logrus.FieldLogger
	opts      Options
	reg       registry
	target    maze.Location
	countdown time.Duration
	closed    bool

	ctx   context.Context
	stop  context.CancelFunc
	jobs  chan job
	wg    sync.WaitGroup
	stats counters
}

// New resolves the target's current location and starts the workers.
func New(g *maze.Graph, target Tracker, pf search.Pathfinder, opts ...Option) (*Dispatcher, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if pf == nil {
		return nil, ErrPathfinderNil
	}
	if target == nil {
		return nil, ErrNoRect
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	nav := o.Navigator
	if nav == nil {
		var err error
		if nav, err = navigator.New(g, navigator.WithLogger(o.Logger)); err != nil {
			return nil, err
		}
	}

	tl, ok := target.TopLeft()
	if !ok {
		return nil, ErrNoRect
	}
	loc, ok := nav.Resolve(tl)
	if !ok {
		return nil, fmt.Errorf("%w: top-left %v", ErrOffGraph, tl)
	}

	ctx, stop := context.WithCancel(o.Context)
	d := &Dispatcher{
		g:         g,
		nav:       nav,
		tracker:   target,
		pf:        pf,
		log:       o.Logger,
		opts:      o,
		target:    loc,
		countdown: o.RefreshInterval,
		ctx:       ctx,
		stop:      stop,
		jobs:      make(chan job, o.QueueSize),
	}
	for i := 0; i < o.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	d.log.WithFields(logrus.Fields{
		"workers": o.Workers, "target": loc.String(), "pathfinder": search.NameOf(pf),
	}).Debug("dispatcher: started")
	return d, nil
}

// Navigator returns the navigator used to resolve the target.
func (d *Dispatcher) Navigator() *navigator.Navigator { return d.nav }

// Graph returns the shared graph.
func (d *Dispatcher) Graph() *maze.Graph { return d.g }

// RefreshInterval returns how often the target is re-resolved.
func (d *Dispatcher) RefreshInterval() time.Duration { return d.opts.RefreshInterval }

// Register adds l and returns its handle.
func (d *Dispatcher) Register(l PathListener, opts ...RegisterOption) ID {
	s := slot{pf: d.pf, cooldown: NewCooldown(d.opts.CooldownRun, d.opts.CooldownPause)}
	for _, opt := range opts {
		opt(&s)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg.add(l, s)
}

// Deregister removes id, cancels its search and discards anything not yet
// delivered. It reports false for an unknown or stale id.
func (d *Dispatcher) Deregister(id ID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.reg.remove(id)
	if !ok {
		return false
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.listener.Mailbox().reset()
	return true
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg.live
}

// Cooldown returns the cooldown of id.
func (d *Dispatcher) Cooldown(id ID) (*Cooldown, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.reg.get(id)
	if s == nil {
		return nil, false
	}
	return s.cooldown, true
}

// TargetLocation returns the last resolved location of the target.
func (d *Dispatcher) TargetLocation() maze.Location {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.target
}

// Stats returns a snapshot of the counters.
func (d *Dispatcher) Stats() Counters {
	return Counters{
		Submitted:  d.stats.submitted.Load(),
		Dropped:    d.stats.dropped.Load(),
		Delivered:  d.stats.delivered.Load(),
		Superseded: d.stats.superseded.Load(),
		Failed:     d.stats.failed.Load(),
		Trimmed:    d.stats.trimmed.Load(),
		Direct:     d.stats.direct.Load(),
		Reroutes:   d.stats.reroutes.Load(),
		Retargets:  d.stats.retargets.Load(),
	}
}

// Request asks for a path from start to the current target location.
// The result arrives in the listener's Mailbox. A forced request replaces
// one in flight and cancels its search.
func (d *Dispatcher) Request(id ID, start maze.Location, forced bool) Outcome {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return Ignored
	}
	s := d.reg.get(id)
	if s == nil {
		return Ignored
	}
	return d.request(id, s, start, forced)
}

func (d *Dispatcher) request(id ID, s *slot, start maze.Location, forced bool) Outcome {
	mb := s.listener.Mailbox()
	if !forced && mb.Waiting() {
		return Ignored
	}
	if start == d.target {
		if forced {
			d.cancelInflight(s)
			mb.reset()
		}
		return Arrived
	}
	if start.OnNode() {
		if other, ok := d.target.Other(start.First); ok {
			d.cancelInflight(s)
			mb.put([]*maze.Node{start.First, other})
			d.stats.direct.Add(1)
			return Direct
		}
	}
	return d.submit(s, job{id: id, graph: d.g, start: start, target: d.target, pf: s.pf}, forced)
}

// submit opens a mailbox generation for j and queues it without blocking.
func (d *Dispatcher) submit(s *slot, j job, forced bool) Outcome {
	mb := s.listener.Mailbox()
	gen, ok := mb.begin(forced)
	if !ok {
		return Ignored
	}
	d.cancelInflight(s)

	ctx, cancel := context.WithCancel(d.ctx)
	s.cancel = cancel
	j.ctx, j.cancel, j.mb, j.gen = ctx, cancel, mb, gen

	select {
	case d.jobs <- j:
		d.stats.submitted.Add(1)
		return Submitted
	default:
		mb.abort(gen)
		cancel()
		s.cancel = nil
		d.stats.dropped.Add(1)
		d.log.WithField("listener", j.id.String()).Warn("dispatcher: job queue full, request dropped")
		return Dropped
	}
}

func (d *Dispatcher) cancelInflight(s *slot) {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.run(j)
	}
}

// run executes one job and hands the result to the mailbox.
func (d *Dispatcher) run(j job) {
	defer j.cancel()
	entry := d.log.WithFields(logrus.Fields{"listener": j.id.String(), "start": j.start.String()})

	res, err := j.pf.Search(j.ctx, j.graph, j.start, j.target)
	if err != nil {
		j.mb.abort(j.gen)
		if j.ctx.Err() != nil {
			entry.Debug("dispatcher: search cancelled")
			return
		}
		d.stats.failed.Add(1)
		entry.WithError(err).Warn("dispatcher: search failed")
		return
	}

	if j.cooldown != nil && !res.Found() {
		// keep the current path; try again after the pause
		j.cooldown.Pause()
		j.mb.abort(j.gen)
		entry.Debug("dispatcher: no detour around conflict")
		return
	}
	if j.mb.complete(j.gen, res.Path) {
		d.stats.delivered.Add(1)
		return
	}
	d.stats.superseded.Add(1)
}

// Update advances the dispatcher by dt of game time: it ticks cooldowns,
// resolves conflicts and, once per refresh interval, re-resolves the
// target. When the target moved, each listener either keeps the part of
// its path that already leads there or is halted and re-routed.
func (d *Dispatcher) Update(dt time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.reg.each(func(_ ID, s *slot) { s.cooldown.Tick(dt) })
	d.resolveConflicts()

	if d.countdown > 0 {
		d.countdown -= dt
		return
	}
	d.countdown = d.opts.RefreshInterval
	d.refreshTarget()
}

func (d *Dispatcher) refreshTarget() {
	tl, ok := d.tracker.TopLeft()
	if !ok {
		d.log.Warn("dispatcher: target has no rect")
		return
	}
	loc, ok := d.nav.Resolve(tl)
	if !ok {
		d.log.WithField("top_left", tl.String()).Warn("dispatcher: target should be in a valid location")
		return
	}
	if loc == d.target {
		return
	}
	d.target = loc
	d.stats.retargets.Add(1)

	d.reg.each(func(id ID, s *slot) {
		if trimmed, ok := navigator.PathThroughNewLocation(s.listener.Path(), loc); ok {
			d.cancelInflight(s)
			s.listener.Mailbox().put(trimmed)
			d.stats.trimmed.Add(1)
			return
		}
		start, ok := s.listener.HaltCurrentAndRequestNewPath()
		if !ok {
			return
		}
		d.request(id, s, start, true)
	})
}

// Close cancels searches in flight, stops the workers and waits for them.
// Later calls are no-ops.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.stop()
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}
