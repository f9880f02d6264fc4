package agent

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/katalvlaran/mazechase/dispatcher"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/navigator"
	"github.com/sirupsen/logrus"
)

// Pursuer follows paths towards the dispatcher's target. It asks for a new
// path whenever it runs out of one and swaps in whatever its mailbox
// delivers.
//
// Update must be called from the same goroutine as Dispatcher.Update. The
// PathListener methods are safe to call from the dispatcher.
type Pursuer struct {
	name  string
	d     *dispatcher.Dispatcher
	nav   *navigator.Navigator
	id    dispatcher.ID
	speed float64
	log   logrus.FieldLogger
	mb    dispatcher.Mailbox

	mu    sync.Mutex
	rect  image.Rectangle
	path  []*maze.Node
	last  *maze.Node // node the pursuer last stood on
	carry float64    // sub-pixel distance not moved yet

	// after an empty delivery: the target it was computed for and the time
	// left before asking again
	unreachable maze.Location
	retryIn     time.Duration
}

// NewPursuer places a pursuer on spawn and registers it with d.
func NewPursuer(d *dispatcher.Dispatcher, spawn *maze.Node, opts ...Option) (*Pursuer, error) {
	if d == nil {
		return nil, ErrNilDispatcher
	}
	if spawn == nil {
		return nil, ErrNilNode
	}
	if !d.Graph().Contains(spawn) {
		return nil, fmt.Errorf("%w: %v", ErrForeignNode, spawn)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	p := &Pursuer{
		name:  o.Name,
		d:     d,
		nav:   d.Navigator(),
		speed: o.Speed,
		log:   o.Logger.WithField("pursuer", o.Name),
		rect:  d.Graph().Geometry().Rect(spawn.Pos),
		last:  spawn,
	}
	var reg []dispatcher.RegisterOption
	if o.Pathfinder != nil {
		reg = append(reg, dispatcher.WithPathfinder(o.Pathfinder))
	}
	p.id = d.Register(p, reg...)
	return p, nil
}

// Name returns the label given by WithName.
func (p *Pursuer) Name() string { return p.name }

// ID returns the dispatcher handle.
func (p *Pursuer) ID() dispatcher.ID { return p.id }

// Detach deregisters the pursuer. It stops receiving paths.
func (p *Pursuer) Detach() { p.d.Deregister(p.id) }

// Path returns the path being followed; the first node is the one the
// pursuer is leaving or standing on.
func (p *Pursuer) Path() []*maze.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Mailbox returns the delivery slot of the pursuer.
func (p *Pursuer) Mailbox() *dispatcher.Mailbox { return &p.mb }

// HaltCurrentAndRequestNewPath drops the current path and tells where the
// pursuer is, for the dispatcher to route it from there.
func (p *Pursuer) HaltCurrentAndRequestNewPath() (maze.Location, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	loc, ok := p.locate()
	p.path = nil
	return loc, ok
}

// Rect returns the tile-sized rectangle the pursuer covers.
func (p *Pursuer) Rect() image.Rectangle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rect
}

// Center returns the centre of Rect.
func (p *Pursuer) Center() image.Point { return rectCenter(p.Rect()) }

// TopLeft returns the top-left corner of Rect. It lets a Pursuer act as a
// dispatcher.Tracker.
func (p *Pursuer) TopLeft() (image.Point, bool) { return p.Rect().Min, true }

// Location returns where the pursuer is on the graph.
func (p *Pursuer) Location() (maze.Location, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locate()
}

// locate must be called with p.mu held.
func (p *Pursuer) locate() (maze.Location, bool) {
	center := rectCenter(p.rect)
	if len(p.path) > 0 {
		first := p.path[0]
		if p.nav.IsSnapWithin(center, first) {
			return maze.At(first), true
		}
		if len(p.path) > 1 {
			if p.nav.IsSnapWithin(center, p.path[1]) {
				return maze.At(p.path[1]), true
			}
			if p.nav.InPathBetween(center, first, p.path[1]) {
				return maze.Between(first, p.path[1]), true
			}
		}
	}
	if p.last != nil && p.nav.IsSnapWithin(center, p.last) {
		return maze.At(p.last), true
	}
	return p.nav.Resolve(p.rect.Min)
}

// Update takes a delivered path, asks for one when idle and moves along it
// by the distance covered in dt.
func (p *Pursuer) Update(dt time.Duration) {
	// the dispatcher lock is never taken under p.mu
	target := p.d.TargetLocation()
	if path, ok := p.mb.Take(); ok {
		p.mu.Lock()
		p.path = path
		if len(path) == 0 {
			p.unreachable, p.retryIn = target, p.d.RefreshInterval()
			p.log.WithField("target", target.String()).Debug("agent: target unreachable, waiting")
		} else {
			p.retryIn = 0
		}
		p.mu.Unlock()
	}

	p.mu.Lock()
	idle := len(p.path) == 0
	loc, ok := p.locate()
	wait := idle && p.backoff(dt, target)
	p.mu.Unlock()
	if idle {
		if !ok {
			p.log.WithField("rect", p.Rect().String()).Warn("agent: pursuer is off the graph")
			return
		}
		if wait {
			return
		}
		if out := p.d.Request(p.id, loc, false); out == dispatcher.Dropped {
			p.log.Debug("agent: path request dropped, retrying next frame")
		}
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	step := p.advance(dt)
	if step == 0 {
		return
	}
	center := rectCenter(p.rect)
	rest, center, err := p.nav.MoveAlongPath(center, p.path, step)
	if err != nil {
		p.log.WithError(err).Warn("agent: cannot move")
		return
	}
	p.rect = p.rect.Add(center.Sub(rectCenter(p.rect)))
	if len(rest) > 0 && p.nav.IsSnapWithin(center, rest[0]) {
		p.last = rest[0]
	}
	if len(rest) <= 1 {
		rest = nil
	}
	p.path = rest
}

// backoff reports whether an idle pursuer should keep waiting after an
// empty delivery. It stops waiting once a refresh interval has passed or the
// target has moved. Must be called with p.mu held.
func (p *Pursuer) backoff(dt time.Duration, target maze.Location) bool {
	if p.retryIn <= 0 {
		return false
	}
	if target != p.unreachable {
		p.retryIn = 0
		return false
	}
	p.retryIn -= dt
	return p.retryIn > 0
}

// advance accumulates dt at the pursuer's speed and returns the whole
// pixels to move now, at least MinStep when any.
func (p *Pursuer) advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	p.carry += dt.Seconds() * p.speed
	step := int(p.carry)
	if step < 1 {
		return 0
	}
	p.carry -= float64(step)
	return max(step, MinStep)
}

func rectCenter(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}
