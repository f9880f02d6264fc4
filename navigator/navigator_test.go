package navigator_test

import (
	"image"
	"testing"

	"github.com/katalvlaran/mazechase/gridgraph"
	"github.com/katalvlaran/mazechase/internal/mazetest"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/navigator"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loop returns the Loop maze with 16px tiles and a navigator with a silent logger.
func loop(t *testing.T) (*maze.Graph, *navigator.Navigator, *logtest.Hook) {
	t.Helper()
	g := mazetest.Compile(t, mazetest.Loop...)
	logger, hook := logtest.NewNullLogger()
	nv, err := navigator.New(g, navigator.WithLogger(logger))
	require.NoError(t, err)
	return g, nv, hook
}

func TestNew_Errors(t *testing.T) {
	_, err := navigator.New(nil)
	assert.ErrorIs(t, err, navigator.ErrGraphNil)

	g := mazetest.Compile(t, mazetest.Loop...)
	_, err = navigator.New(g, navigator.WithSnapThreshold(-1))
	assert.ErrorIs(t, err, navigator.ErrOptionViolation)

	nv, err := navigator.New(g)
	require.NoError(t, err)
	assert.Equal(t, navigator.DefaultSnapThreshold, nv.SnapThreshold())
	assert.Equal(t, 2, navigator.DefaultSnapThreshold)
}

func TestSnap(t *testing.T) {
	_, nv, hook := loop(t)

	cases := []struct {
		name    string
		topLeft image.Point
		want    navigator.CoordPair
	}{
		{"Aligned", image.Pt(16, 16), navigator.Single(maze.C(1, 1))},
		{"WithinThreshold", image.Pt(18, 14), navigator.Single(maze.C(1, 1))},
		{"RightOfTile", image.Pt(21, 16), navigator.Pair(maze.C(1, 1), maze.C(2, 1))},
		{"LeftOfTile", image.Pt(11, 16), navigator.Pair(maze.C(1, 1), maze.C(0, 1))},
		{"BelowTile", image.Pt(16, 22), navigator.Pair(maze.C(1, 1), maze.C(1, 2))},
		{"AboveTile", image.Pt(17, 10), navigator.Pair(maze.C(1, 1), maze.C(1, 0))},
		{"HalfRoundsToEven", image.Pt(24, 16), navigator.Pair(maze.C(2, 1), maze.C(1, 1))},
		{"HalfRoundsDownToEven", image.Pt(8, 16), navigator.Pair(maze.C(0, 1), maze.C(1, 1))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nv.Snap(tc.topLeft))
		})
	}
	assert.Empty(t, hook.AllEntries(), "aligned cases must not warn")
}

// Misaligned on both axes: a warning is logged and the larger remainder
// decides, with ties going to the vertical axis.
func TestSnap_DiagonalMisalignment(t *testing.T) {
	_, nv, hook := loop(t)

	assert.Equal(t, navigator.Pair(maze.C(1, 1), maze.C(2, 1)), nv.Snap(image.Pt(21, 20)))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, true, hook.LastEntry().Data["horizontal"])

	assert.Equal(t, navigator.Pair(maze.C(1, 1), maze.C(1, 2)), nv.Snap(image.Pt(20, 21)))
	assert.Equal(t, navigator.Pair(maze.C(1, 1), maze.C(1, 2)), nv.Snap(image.Pt(21, 21)))
	assert.Len(t, hook.AllEntries(), 3)
}

func TestSnap_Offset(t *testing.T) {
	geom := maze.Geometry{TileSize: 16, Offset: image.Pt(10, 20)}
	g, err := gridgraph.Compile(mazetest.Costs(mazetest.Loop...), gridgraph.WithGeometry(geom))
	require.NoError(t, err)
	nv, err := navigator.New(g)
	require.NoError(t, err)

	assert.Equal(t, navigator.Single(maze.C(1, 1)), nv.Snap(image.Pt(26, 36)))
	loc, ok := nv.Resolve(image.Pt(26+8, 36))
	require.True(t, ok)
	assert.Equal(t, maze.C(1, 1), loc.First.Pos)
	assert.Equal(t, maze.C(3, 1), loc.Second.Pos)
}

func TestLocate(t *testing.T) {
	g, nv, _ := loop(t)
	n := func(x, y int) *maze.Node { return mazetest.Node(t, g, x, y) }

	cases := []struct {
		name string
		in   navigator.CoordPair
		want maze.Location
		ok   bool
	}{
		{"OnNode", navigator.Single(maze.C(3, 1)), maze.At(n(3, 1)), true},
		{"EqualPairCollapses", navigator.Pair(maze.C(1, 1), maze.C(1, 1)), maze.At(n(1, 1)), true},
		{"HorizontalCorridor", navigator.Single(maze.C(2, 1)), maze.Between(n(1, 1), n(3, 1)), true},
		{"HorizontalPair", navigator.Pair(maze.C(1, 1), maze.C(2, 1)), maze.Between(n(1, 1), n(3, 1)), true},
		{"ReversedPair", navigator.Pair(maze.C(2, 1), maze.C(1, 1)), maze.Between(n(1, 1), n(3, 1)), true},
		{"VerticalCorridor", navigator.Single(maze.C(1, 2)), maze.Between(n(1, 1), n(1, 3)), true},
		{"VerticalPair", navigator.Pair(maze.C(5, 3), maze.C(5, 2)), maze.Between(n(5, 1), n(5, 3)), true},
		{"Wall", navigator.Single(maze.C(2, 2)), maze.Location{}, false},
		{"OutsideMaze", navigator.Single(maze.C(-1, -1)), maze.Location{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := nv.Locate(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// The nearest nodes on both sides of a wall are not an edge.
func TestLocate_AcrossWall(t *testing.T) {
	g := mazetest.Compile(t, "..=..")
	nv, err := navigator.New(g)
	require.NoError(t, err)

	_, ok := nv.Locate(navigator.Single(maze.C(2, 0)))
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	g, nv, _ := loop(t)
	loc, ok := nv.Resolve(image.Pt(40, 16))
	require.True(t, ok)
	assert.Equal(t, maze.Between(mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 3, 1)), loc)

	loc, ok = nv.Resolve(image.Pt(48, 48))
	require.True(t, ok)
	assert.Equal(t, maze.At(mazetest.Node(t, g, 3, 3)), loc)
}

func TestIsSnapWithin(t *testing.T) {
	g, nv, _ := loop(t)
	a := mazetest.Node(t, g, 1, 1) // centre (24,24)

	assert.True(t, nv.IsSnapWithin(image.Pt(24, 24), a))
	assert.True(t, nv.IsSnapWithin(image.Pt(22, 22), a))
	assert.True(t, nv.IsSnapWithin(image.Pt(25, 25), a))
	assert.False(t, nv.IsSnapWithin(image.Pt(26, 24), a), "upper bound is open")
	assert.False(t, nv.IsSnapWithin(image.Pt(21, 24), a))
}

func TestDirectionFromAndAreConnected(t *testing.T) {
	g, nv, _ := loop(t)
	a, b, c := mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 3, 1), mazetest.Node(t, g, 3, 3)

	d, ok := nv.DirectionFrom(a, b)
	require.True(t, ok)
	assert.Equal(t, maze.Right, d)
	d, ok = nv.DirectionFrom(c, b)
	require.True(t, ok)
	assert.Equal(t, maze.Up, d)
	_, ok = nv.DirectionFrom(a, c)
	assert.False(t, ok)

	assert.True(t, nv.AreConnected())
	assert.True(t, nv.AreConnected(a))
	assert.True(t, nv.AreConnected(a, b, c))
	assert.False(t, nv.AreConnected(a, c))
}

func TestInPathBetween(t *testing.T) {
	g, nv, _ := loop(t)
	a, b := mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 3, 1) // centres (24,24) and (56,24)
	far := mazetest.Node(t, g, 5, 1)

	assert.True(t, nv.InPathBetween(image.Pt(24, 24), a, b), "snapped to start")
	assert.False(t, nv.InPathBetween(image.Pt(56, 24), a, b), "snapped to end")
	assert.True(t, nv.InPathBetween(image.Pt(40, 24), a, b))
	assert.True(t, nv.InPathBetween(image.Pt(28, 24), a, b))
	assert.True(t, nv.InPathBetween(image.Pt(40, 24), b, a), "either orientation")
	assert.False(t, nv.InPathBetween(image.Pt(24, 40), a, b), "below the corridor")
	assert.False(t, nv.InPathBetween(image.Pt(40, 24), a, far), "not linked")

	down := mazetest.Node(t, g, 1, 3) // centre (24,56)
	assert.True(t, nv.InPathBetween(image.Pt(24, 40), a, down))
	assert.True(t, nv.InPathBetween(image.Pt(24, 40), down, a))
}

func TestMoveAlongPath(t *testing.T) {
	g, nv, _ := loop(t)
	a, b, c := mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 3, 1), mazetest.Node(t, g, 5, 1)
	turn := mazetest.Node(t, g, 3, 3)
	start := image.Pt(24, 24)

	cases := []struct {
		name       string
		center     image.Point
		path       []*maze.Node
		distance   int
		wantPath   []*maze.Node
		wantCenter image.Point
	}{
		{"ZeroDistance", start, []*maze.Node{a, b}, 0, []*maze.Node{a, b}, start},
		{"SingleNode", start, []*maze.Node{a}, 10, []*maze.Node{a}, start},
		{"PartWay", start, []*maze.Node{a, b, c}, 10, []*maze.Node{a, b, c}, image.Pt(34, 24)},
		{"ExactlyToNode", start, []*maze.Node{a, b, c}, 32, []*maze.Node{b, c}, image.Pt(56, 24)},
		{"PastNode", start, []*maze.Node{a, b, c}, 40, []*maze.Node{b, c}, image.Pt(64, 24)},
		{"AroundCorner", start, []*maze.Node{a, b, turn}, 40, []*maze.Node{b, turn}, image.Pt(56, 32)},
		{"BeyondEnd", start, []*maze.Node{a, b, c}, 1000, []*maze.Node{c}, image.Pt(88, 24)},
		{"OffPathDropsFirst", image.Pt(24, 56), []*maze.Node{a, b}, 5, []*maze.Node{b}, image.Pt(24, 56)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path, center, err := nv.MoveAlongPath(tc.center, tc.path, tc.distance)
			require.NoError(t, err)
			assert.Equal(t, mazetest.Positions(tc.wantPath), mazetest.Positions(path))
			assert.Equal(t, tc.wantCenter, center)
		})
	}

	_, _, err := nv.MoveAlongPath(start, []*maze.Node{a, b}, -1)
	assert.ErrorIs(t, err, navigator.ErrNegativeDistance)
}

// Moving one pixel at a time eventually drops every node but the last.
// Snapping lets the centre cut corners by up to the snap threshold.
func TestMoveAlongPath_Incremental(t *testing.T) {
	g, nv, _ := loop(t)
	path := []*maze.Node{
		mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 3, 1),
		mazetest.Node(t, g, 3, 3), mazetest.Node(t, g, 5, 3),
	}
	center := g.Center(path[0])
	var err error
	for i := 0; i < 200 && len(path) > 1; i++ {
		path, center, err = nv.MoveAlongPath(center, path, 1)
		require.NoError(t, err)
	}
	require.Len(t, path, 1)
	assert.Equal(t, maze.C(5, 3), path[0].Pos)
	assert.True(t, nv.IsSnapWithin(center, path[0]))
}

// Moving in small steps covers the same ground as one move with the summed
// budget while the walker stays clear of the far node. Within the snap
// threshold of a node the two part ways: a step that ends exactly inside the
// snap box drops the node, so 1px steps through a corner of Loop stopped at
// (86,52) where a single move reached (88,50).
func TestMoveAlongPath_StepsAddUp(t *testing.T) {
	g := mazetest.Compile(t, "=======", "=.....=", "=======")
	nv, err := navigator.New(g)
	require.NoError(t, err)
	a, b := mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 5, 1) // centres (24,24) and (88,24)

	tests := []struct {
		name        string
		step, steps int
	}{
		{"1px", 1, 30},
		{"3px", 3, 10},
		{"5px", 5, 12},
		{"7px", 7, 7},
		{"1px up to the snap box", 1, 61},
		{"uneven tail", 4, 15},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path, center := []*maze.Node{a, b}, g.Center(a)
			for i := 0; i < tc.steps; i++ {
				var err error
				path, center, err = nv.MoveAlongPath(center, path, tc.step)
				require.NoError(t, err)
			}
			_, once, err := nv.MoveAlongPath(g.Center(a), []*maze.Node{a, b}, tc.step*tc.steps)
			require.NoError(t, err)

			assert.InDelta(t, once.X, center.X, 1)
			assert.InDelta(t, once.Y, center.Y, 1)
			assert.Equal(t, 24+tc.step*tc.steps, once.X)
			assert.Len(t, path, 2, "the far node is still ahead")
		})
	}
}

func TestPathThroughNewLocation(t *testing.T) {
	g, _, _ := loop(t)
	a, b := mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 3, 1)
	c, d := mazetest.Node(t, g, 5, 1), mazetest.Node(t, g, 5, 3)
	path := []*maze.Node{a, b, c, d}

	got, ok := navigator.PathThroughNewLocation(path, maze.At(c))
	require.True(t, ok)
	assert.Equal(t, []*maze.Node{a, b, c}, got)

	got, ok = navigator.PathThroughNewLocation(path, maze.Between(b, c))
	require.True(t, ok)
	assert.Equal(t, []*maze.Node{a, b}, got)

	got, ok = navigator.PathThroughNewLocation(path, maze.Between(c, b))
	require.True(t, ok)
	assert.Equal(t, []*maze.Node{a, b}, got)

	_, ok = navigator.PathThroughNewLocation(path, maze.At(mazetest.Node(t, g, 1, 3)))
	assert.False(t, ok)
	_, ok = navigator.PathThroughNewLocation([]*maze.Node{a}, maze.At(a))
	assert.False(t, ok)

	got[0] = nil
	assert.Same(t, a, path[0], "result does not alias the input")
}
