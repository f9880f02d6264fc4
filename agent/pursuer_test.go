package agent_test

import (
	"image"
	"testing"
	"time"

	"github.com/katalvlaran/mazechase/agent"
	"github.com/katalvlaran/mazechase/bfs"
	"github.com/katalvlaran/mazechase/dispatcher"
	"github.com/katalvlaran/mazechase/internal/mazetest"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ dispatcher.PathListener = (*agent.Pursuer)(nil)
	_ dispatcher.Tracker      = (*agent.Pursuer)(nil)
	_ dispatcher.Tracker      = (*agent.Wanderer)(nil)
)

// fixed is a target that never moves.
type fixed image.Point

func (f fixed) TopLeft() (image.Point, bool) { return image.Point(f), true }

func quiet() logrus.FieldLogger {
	l, _ := logtest.NewNullLogger()
	return l
}

func setup(t *testing.T, goal maze.Coord) (*maze.Graph, *dispatcher.Dispatcher) {
	t.Helper()
	g := mazetest.Compile(t, mazetest.Loop...)
	d, err := dispatcher.New(g, fixed(g.Geometry().Rect(goal).Min), bfs.New(), dispatcher.WithLogger(quiet()))
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return g, d
}

func TestNewPursuer_Errors(t *testing.T) {
	g, d := setup(t, maze.C(5, 3))
	spawn := mazetest.Node(t, g, 1, 1)

	_, err := agent.NewPursuer(nil, spawn)
	assert.ErrorIs(t, err, agent.ErrNilDispatcher)
	_, err = agent.NewPursuer(d, nil)
	assert.ErrorIs(t, err, agent.ErrNilNode)
	_, err = agent.NewPursuer(d, maze.NewNode(maze.C(1, 1)))
	assert.ErrorIs(t, err, agent.ErrForeignNode)
	_, err = agent.NewPursuer(d, spawn, agent.WithSpeed(0))
	assert.ErrorIs(t, err, agent.ErrOptionViolation)
	assert.Zero(t, d.Len(), "failed constructions do not register")
}

func TestPursuer_Spawn(t *testing.T) {
	g, d := setup(t, maze.C(5, 3))
	spawn := mazetest.Node(t, g, 1, 1)
	p, err := agent.NewPursuer(d, spawn, agent.WithName("blinky"))
	require.NoError(t, err)

	assert.Equal(t, "blinky", p.Name())
	assert.Equal(t, image.Rect(16, 16, 32, 32), p.Rect())
	assert.Equal(t, image.Pt(24, 24), p.Center())
	tl, ok := p.TopLeft()
	assert.True(t, ok)
	assert.Equal(t, image.Pt(16, 16), tl)
	loc, ok := p.Location()
	require.True(t, ok)
	assert.Equal(t, maze.At(spawn), loc)
	assert.Equal(t, 1, d.Len())

	p.Detach()
	assert.Zero(t, d.Len())
}

func TestPursuer_ReachesTarget(t *testing.T) {
	g, d := setup(t, maze.C(5, 3))
	goal := mazetest.Node(t, g, 5, 3)
	p, err := agent.NewPursuer(d, mazetest.Node(t, g, 1, 1), agent.WithLogger(quiet()))
	require.NoError(t, err)

	const frame = 16 * time.Millisecond
	require.Eventually(t, func() bool {
		p.Update(frame)
		d.Update(frame)
		return d.Navigator().IsSnapWithin(p.Center(), goal)
	}, 2*time.Second, time.Millisecond)

	p.Update(frame)
	loc, ok := p.Location()
	require.True(t, ok)
	assert.Equal(t, maze.At(goal), loc)
	assert.Empty(t, p.Path())
}

func TestPursuer_Halt(t *testing.T) {
	g, d := setup(t, maze.C(5, 3))
	a, b := mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 3, 1)
	p, err := agent.NewPursuer(d, a)
	require.NoError(t, err)

	// a zero step asks and takes without moving
	require.Eventually(t, func() bool {
		p.Update(0)
		return len(p.Path()) > 0
	}, 2*time.Second, time.Millisecond)
	assert.Equal(t,
		[]maze.Coord{maze.C(1, 1), maze.C(3, 1), maze.C(5, 1), maze.C(5, 3)},
		mazetest.Positions(p.Path()))

	p.Update(50 * time.Millisecond) // 6.4 px at the default speed
	assert.Equal(t, image.Pt(30, 24), p.Center())

	loc, ok := p.HaltCurrentAndRequestNewPath()
	require.True(t, ok)
	assert.Equal(t, maze.Between(a, b), loc)
	assert.Empty(t, p.Path())
}

func TestPursuer_SlowSpeedAccumulates(t *testing.T) {
	g, d := setup(t, maze.C(5, 1))
	p, err := agent.NewPursuer(d, mazetest.Node(t, g, 1, 1), agent.WithSpeed(10))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		p.Update(0)
		return len(p.Path()) > 0
	}, 2*time.Second, time.Millisecond)

	p.Update(50 * time.Millisecond) // 0.5 px: not yet
	assert.Equal(t, image.Pt(24, 24), p.Center())
	p.Update(50 * time.Millisecond) // 1 px, rounded up to the minimum step
	assert.Equal(t, image.Pt(24+agent.MinStep, 24), p.Center())
}

func TestPursuer_UnreachableTargetBacksOff(t *testing.T) {
	g := mazetest.Compile(t,
		"=========",
		"=..=....=",
		"=========",
	)
	d, err := dispatcher.New(g, fixed(g.Geometry().Rect(maze.C(7, 1)).Min), bfs.New(),
		dispatcher.WithLogger(quiet()),
		dispatcher.WithRefreshInterval(500*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(d.Close)

	p, err := agent.NewPursuer(d, mazetest.Node(t, g, 1, 1), agent.WithLogger(quiet()))
	require.NoError(t, err)

	const frame = 16 * time.Millisecond
	for i := 0; i < 60; i++ {
		p.Update(frame)
		d.Update(frame)
		require.Eventually(t, func() bool { return !p.Mailbox().Waiting() }, time.Second, time.Millisecond)
	}

	st := d.Stats()
	assert.Equal(t, int64(2), st.Submitted, "one search, then one retry per refresh interval")
	assert.Equal(t, st.Submitted, st.Delivered)
	assert.Empty(t, p.Path())
	assert.Equal(t, image.Pt(24, 24), p.Center(), "stays put")
}
