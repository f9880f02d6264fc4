package dispatcher_test

import (
	"context"
	"image"
	"sync"
	"testing"

	"github.com/katalvlaran/mazechase/dispatcher"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/search"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// tracker is a movable target.
type tracker struct {
	mu  sync.Mutex
	tl  image.Point
	has bool
}

func at(g *maze.Graph, x, y int) *tracker {
	return &tracker{tl: g.Geometry().Rect(maze.C(x, y)).Min, has: true}
}

func (t *tracker) TopLeft() (image.Point, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tl, t.has
}

func (t *tracker) moveTo(g *maze.Graph, x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tl = g.Geometry().Rect(maze.C(x, y)).Min
}

// listener is a scripted PathListener.
type listener struct {
	mu     sync.Mutex
	path   []*maze.Node
	mb     dispatcher.Mailbox
	halted int
	loc    maze.Location
}

func (l *listener) Path() []*maze.Node {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

func (l *listener) Mailbox() *dispatcher.Mailbox { return &l.mb }

func (l *listener) HaltCurrentAndRequestNewPath() (maze.Location, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.halted++
	l.path = nil
	return l.loc, !l.loc.IsZero()
}

func (l *listener) haltCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.halted
}

// gate is a pathfinder that blocks until released or cancelled.
type gate struct {
	started chan struct{}
	release chan struct{}
	errs    chan error
	inner   search.Pathfinder
}

func newGate(inner search.Pathfinder) *gate {
	return &gate{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
		errs:    make(chan error, 16),
		inner:   inner,
	}
}

func (g *gate) Search(ctx context.Context, gr *maze.Graph, start, target maze.Location) (search.Result, error) {
	g.started <- struct{}{}
	select {
	case <-ctx.Done():
		g.errs <- ctx.Err()
		return search.Result{}, ctx.Err()
	case <-g.release:
	}
	return g.inner.Search(ctx, gr, start, target)
}

// quiet returns a logger that records entries instead of printing them.
func quiet() (*logrus.Logger, *logtest.Hook) {
	l, h := logtest.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	return l, h
}

// newDispatcher builds a dispatcher closed at the end of the test.
func newDispatcher(t *testing.T, g *maze.Graph, tr dispatcher.Tracker, pf search.Pathfinder, opts ...dispatcher.Option) *dispatcher.Dispatcher {
	t.Helper()
	logger, _ := quiet()
	d, err := dispatcher.New(g, tr, pf, append([]dispatcher.Option{dispatcher.WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d
}
