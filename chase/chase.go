// Package chase runs one chase: a wandering target, a dispatcher and the
// pursuers configured for a level, advanced frame by frame with Step.
//
// When a pursuer catches the target, the target respawns at the spawn point
// furthest from all pursuers.
package chase

import (
	"fmt"
	"image"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/mazechase/agent"
	"github.com/katalvlaran/mazechase/config"
	"github.com/katalvlaran/mazechase/dispatcher"
	"github.com/katalvlaran/mazechase/level"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/pathfinder"
	"github.com/katalvlaran/mazechase/stats"
	"github.com/sirupsen/logrus"
)

// Options configures a Session.
type Options struct {
	Logger logrus.FieldLogger
	Sinks  []stats.Sink
	RunID  uuid.UUID
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the logger of the session and everything it builds.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSinks measures every pursuer's searches and sends the samples to sinks.
func WithSinks(sinks ...stats.Sink) Option {
	return func(o *Options) { o.Sinks = append(o.Sinks, sinks...) }
}

// WithRunID tags the samples of this session.
func WithRunID(id uuid.UUID) Option { return func(o *Options) { o.RunID = id } }

// AgentState is the position of one agent in a Snapshot.
type AgentState struct {
	Name      string       `json:"name"`
	Algorithm string       `json:"algorithm,omitempty"`
	X         int          `json:"x"`
	Y         int          `json:"y"`
	Path      []maze.Coord `json:"path,omitempty"`
}

// Snapshot is the state of a session after a Step.
type Snapshot struct {
	Frame    uint64              `json:"frame"`
	Elapsed  time.Duration       `json:"elapsed_ns"`
	Catches  int                 `json:"catches"`
	Target   AgentState          `json:"target"`
	Pursuers []AgentState        `json:"pursuers"`
	Stats    dispatcher.Counters `json:"stats"`
}

type member struct {
	p         *agent.Pursuer
	algorithm string
}

// Session owns the agents and the dispatcher of one chase. Step and
// Snapshot may be called from different goroutines.
type Session struct {
	mu       sync.Mutex
	layout   *level.Layout
	g        *maze.Graph
	target   *agent.Wanderer
	d        *dispatcher.Dispatcher
	pursuers []member
	respawn  []*maze.Node
	log      logrus.FieldLogger

	frame   uint64
	elapsed time.Duration
	catches int
	closed  bool
}

// New builds a session on l, which must be built, as described by cfg.
func New(l *level.Layout, cfg config.Config, opts ...Option) (*Session, error) {
	o := Options{Logger: logrus.StandardLogger(), RunID: uuid.New()}
	for _, opt := range opts {
		opt(&o)
	}
	g, err := l.Graph()
	if err != nil {
		return nil, err
	}
	targets, err := l.SpawnNodes(level.TargetSpawn)
	if err != nil {
		return nil, err
	}
	spawns, err := l.SpawnNodes(level.PursuerSpawn)
	if err != nil {
		return nil, err
	}
	if stranded, err := l.Stranded(); err == nil && len(stranded) > 0 {
		o.Logger.WithField("spawns", stranded).Warn("chase: spawn points cannot reach the target")
	}

	wanderer, err := agent.NewWanderer(g, targets[0],
		agent.WithWanderSpeed(cfg.Target.Speed), agent.WithSeed(cfg.Target.Seed))
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	def, err := pathfinder.Lookup(cfg.Dispatcher.Algorithm, pathfinder.WithSeed(seed))
	if err != nil {
		return nil, err
	}
	d, err := dispatcher.New(g, wanderer, def,
		append(cfg.DispatcherOptions(), dispatcher.WithLogger(o.Logger))...)
	if err != nil {
		return nil, err
	}

	s := &Session{
		layout:  l,
		g:       g,
		target:  wanderer,
		d:       d,
		respawn: append(append([]*maze.Node(nil), targets...), spawns...),
		log:     o.Logger,
	}
	picker := level.NewPicker(spawns, rand.New(rand.NewSource(seed)))
	for i, pc := range cfg.Pursuers {
		p, alg, err := s.addPursuer(pc, cfg, pursuerSeed(seed, i), picker, o)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("chase: pursuer %q: %w", pc.Name, err)
		}
		s.pursuers = append(s.pursuers, member{p: p, algorithm: alg})
	}
	s.log.WithFields(logrus.Fields{
		"pursuers": len(s.pursuers), "nodes": g.Len(), "run": o.RunID.String(),
	}).Info("chase: session ready")
	return s, nil
}

// pursuerSeed gives the i-th pursuer its own random stream, so pursuers on
// seeded strategies do not walk in lockstep.
func pursuerSeed(base int64, i int) int64 { return base + int64(i) }

func (s *Session) addPursuer(pc config.Pursuer, cfg config.Config, seed int64, picker *level.Picker[*maze.Node], o Options) (*agent.Pursuer, string, error) {
	alg := pc.Algorithm
	if alg == "" {
		alg = cfg.Dispatcher.Algorithm
	}
	pf, err := pathfinder.Lookup(alg, pathfinder.WithSeed(seed))
	if err != nil {
		return nil, "", err
	}
	if len(o.Sinks) > 0 {
		// pursuers search side by side on the worker pool
		mopts := []stats.Option{stats.WithLabel(pc.Name), stats.WithRunID(o.RunID), stats.WithLogger(o.Logger), stats.WithMemStats(false)}
		for _, sink := range o.Sinks {
			mopts = append(mopts, stats.WithSink(sink))
		}
		pf = stats.NewMonitor(pf, mopts...)
	}
	spawn, _ := picker.Next()
	popts := []agent.Option{agent.WithName(pc.Name), agent.WithPathfinder(pf), agent.WithLogger(o.Logger)}
	if pc.Speed > 0 {
		popts = append(popts, agent.WithSpeed(pc.Speed))
	}
	p, err := agent.NewPursuer(s.d, spawn, popts...)
	return p, alg, err
}

// Dispatcher returns the session's dispatcher.
func (s *Session) Dispatcher() *dispatcher.Dispatcher { return s.d }

// Layout returns the level the session runs on.
func (s *Session) Layout() *level.Layout { return s.layout }

// Step advances the chase by dt: pursuers, target, dispatcher, then catches.
func (s *Session) Step(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, m := range s.pursuers {
		m.p.Update(dt)
	}
	s.target.Update(dt)
	s.d.Update(dt)
	s.frame++
	s.elapsed += dt

	tc := s.target.Center()
	reach := s.g.Geometry().TileSize / 2
	for _, m := range s.pursuers {
		pc := m.p.Center()
		if abs(pc.X-tc.X) < reach && abs(pc.Y-tc.Y) < reach {
			s.caught(m.p)
			break
		}
	}
}

// caught must be called with s.mu held.
func (s *Session) caught(by *agent.Pursuer) {
	s.catches++
	centres := make([]image.Point, len(s.pursuers))
	for i, m := range s.pursuers {
		centres[i] = m.p.Center()
	}
	n := furthest(s.g, s.respawn, centres)
	if err := s.target.Teleport(n); err != nil {
		s.log.WithError(err).Warn("chase: respawn failed")
		return
	}
	s.log.WithFields(logrus.Fields{
		"by": by.Name(), "catches": s.catches, "respawn": n.String(),
	}).Info("chase: target caught")
}

// furthest returns the candidate whose nearest pursuer is furthest away,
// in pixel L1 distance; ties go to the earlier candidate.
func furthest(g *maze.Graph, candidates []*maze.Node, pursuers []image.Point) *maze.Node {
	var (
		best  *maze.Node
		bestD = -1
	)
	for _, n := range candidates {
		c := g.Center(n)
		nearest := int(^uint(0) >> 1)
		for _, p := range pursuers {
			nearest = min(nearest, abs(c.X-p.X)+abs(c.Y-p.Y))
		}
		if nearest > bestD {
			best, bestD = n, nearest
		}
	}
	return best
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	tc := s.target.Center()
	snap := Snapshot{
		Frame:    s.frame,
		Elapsed:  s.elapsed,
		Catches:  s.catches,
		Target:   AgentState{Name: "target", X: tc.X, Y: tc.Y},
		Pursuers: make([]AgentState, 0, len(s.pursuers)),
		Stats:    s.d.Stats(),
	}
	for _, m := range s.pursuers {
		c := m.p.Center()
		snap.Pursuers = append(snap.Pursuers, AgentState{
			Name:      m.p.Name(),
			Algorithm: m.algorithm,
			X:         c.X,
			Y:         c.Y,
			Path:      coords(m.p.Path()),
		})
	}
	return snap
}

// Close stops the dispatcher. Later Steps are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, m := range s.pursuers {
		m.p.Detach()
	}
	s.d.Close()
}

func coords(path []*maze.Node) []maze.Coord {
	if len(path) == 0 {
		return nil
	}
	out := make([]maze.Coord, len(path))
	for i, n := range path {
		out[i] = n.Pos
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
