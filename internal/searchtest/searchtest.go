// Package searchtest holds the behaviour every search.Pathfinder must share.
package searchtest

import (
	"context"
	"testing"

	"github.com/katalvlaran/mazechase/gridgraph"
	"github.com/katalvlaran/mazechase/internal/mazetest"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Connected fails t unless consecutive nodes of path are linked.
func Connected(t *testing.T, path []*maze.Node) {
	t.Helper()
	for i := 0; i+1 < len(path); i++ {
		if !maze.Adjacent(path[i], path[i+1]) {
			t.Fatalf("path %s breaks between %v and %v", maze.FormatPath(path), path[i], path[i+1])
		}
	}
}

// Unique fails t if a node appears twice in expanded.
func Unique(t *testing.T, expanded []*maze.Node) {
	t.Helper()
	seen := make(map[*maze.Node]bool, len(expanded))
	for _, n := range expanded {
		if seen[n] {
			t.Fatalf("node %v expanded twice", n)
		}
		seen[n] = true
	}
}

// Run exercises the shared contract against pf.
func Run(t *testing.T, pf search.Pathfinder) {
	ctx := context.Background()

	t.Run("StartEqualsTarget", func(t *testing.T) {
		g := mazetest.Compile(t, mazetest.Loop...)
		a := mazetest.Node(t, g, 3, 1)
		res, err := pf.Search(ctx, g, maze.At(a), maze.At(a))
		require.NoError(t, err)
		assert.Equal(t, []*maze.Node{a}, res.Path)
		assert.Empty(t, res.Expanded)
	})

	t.Run("Corridor", func(t *testing.T) {
		g := mazetest.Compile(t, "S...G")
		s, goal := mazetest.Node(t, g, 0, 0), mazetest.Node(t, g, 4, 0)
		res, err := pf.Search(ctx, g, maze.At(s), maze.At(goal))
		require.NoError(t, err)
		require.Equal(t, []*maze.Node{s, goal}, res.Path)
		assert.Equal(t, 4, res.Weight())
	})

	t.Run("Unreachable", func(t *testing.T) {
		g := mazetest.Compile(t, "..=..")
		a, b := mazetest.Node(t, g, 0, 0), mazetest.Node(t, g, 4, 0)
		res, err := pf.Search(ctx, g, maze.At(a), maze.At(b))
		require.NoError(t, err)
		assert.False(t, res.Found())
		assert.Nil(t, res.Path)
	})

	t.Run("MidEdgeStart", func(t *testing.T) {
		g := mazetest.Compile(t, mazetest.Loop...)
		a, b := mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 3, 1)
		goal := mazetest.Node(t, g, 3, 3)
		res, err := pf.Search(ctx, g, maze.Between(a, b), maze.At(goal))
		require.NoError(t, err)
		require.True(t, res.Found())
		require.GreaterOrEqual(t, len(res.Path), 3)
		assert.Same(t, a, res.Path[0], "the node the agent comes from leads the path")
		assert.Same(t, b, res.Path[1], "the search starts at the second node")
		assert.Same(t, goal, res.Path[len(res.Path)-1])
		Connected(t, res.Path)
	})

	t.Run("MidEdgeTarget", func(t *testing.T) {
		g := mazetest.Compile(t, mazetest.Loop...)
		start := mazetest.Node(t, g, 1, 1)
		c, d := mazetest.Node(t, g, 3, 3), mazetest.Node(t, g, 5, 3)
		res, err := pf.Search(ctx, g, maze.At(start), maze.Between(c, d))
		require.NoError(t, err)
		require.True(t, res.Found())
		tail := res.Path[len(res.Path)-2:]
		assert.ElementsMatch(t, []*maze.Node{c, d}, tail, "both target nodes close the path")
		Connected(t, res.Path)
		Unique(t, res.Expanded)
	})

	t.Run("BlockedEdge", func(t *testing.T) {
		g := mazetest.Compile(t, mazetest.Loop...)
		a, b := mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 3, 1)
		blocked := g.WithoutEdge(a, maze.Right)
		res, err := pf.Search(ctx, blocked, maze.At(a), maze.At(b))
		require.NoError(t, err)
		require.True(t, res.Found())
		assert.NotSame(t, b, res.Path[1], "blocked half-edge must not be used")
		Connected(t, res.Path)
	})

	t.Run("Cancelled", func(t *testing.T) {
		g := mazetest.Compile(t, mazetest.Loop...)
		a, b := mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 5, 3)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := pf.Search(cctx, g, maze.At(a), maze.At(b))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		g := mazetest.Compile(t, mazetest.Loop...)
		a := mazetest.Node(t, g, 1, 1)
		_, err := pf.Search(ctx, nil, maze.At(a), maze.At(a))
		assert.ErrorIs(t, err, search.ErrGraphNil)
		_, err = pf.Search(ctx, g, maze.Location{}, maze.At(a))
		assert.ErrorIs(t, err, search.ErrInvalidLocation)
	})
}

// Pillars returns an n×n open floor with a wall on every tile whose
// coordinates are both odd. Every even crossing becomes a node.
func Pillars(n int) [][]int {
	grid := make([][]int, n)
	for y := range grid {
		grid[y] = make([]int, n)
		for x := range grid[y] {
			if x%2 == 1 && y%2 == 1 {
				grid[y][x] = maze.WallCost
			} else {
				grid[y][x] = maze.SpaceCost
			}
		}
	}
	return grid
}

// Bench runs pf corner to corner on a 129×129 Pillars maze.
func Bench(b *testing.B, pf search.Pathfinder) {
	const n = 129
	g, err := gridgraph.Compile(Pillars(n))
	if err != nil {
		b.Fatalf("setup Compile failed: %v", err)
	}
	from := mazetest.Node(b, g, 0, 0)
	to := mazetest.Node(b, g, n-1, n-1)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pf.Search(ctx, g, maze.At(from), maze.At(to)); err != nil {
			b.Fatal(err)
		}
	}
}
