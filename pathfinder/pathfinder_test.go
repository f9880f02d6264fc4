package pathfinder_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/mazechase/internal/mazetest"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/pathfinder"
	"github.com/katalvlaran/mazechase/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"astar", "bfs", "dfs", "random", "ucs"}, pathfinder.Names())
	assert.Subset(t, pathfinder.Names(), pathfinder.Searches())
}

func TestLookup(t *testing.T) {
	g := mazetest.Compile(t, "S...G")
	s, goal := mazetest.Node(t, g, 0, 0), mazetest.Node(t, g, 4, 0)

	for _, name := range pathfinder.Searches() {
		t.Run(name, func(t *testing.T) {
			pf, err := pathfinder.Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, name, search.NameOf(pf))

			res, err := pf.Search(context.Background(), g, maze.At(s), maze.At(goal))
			require.NoError(t, err)
			assert.Equal(t, 4, res.Weight())
		})
	}
}

func TestLookup_RandomSeeded(t *testing.T) {
	g := mazetest.Compile(t, mazetest.Loop...)
	start := mazetest.Node(t, g, 1, 1)

	walk := func() []maze.Coord {
		pf, err := pathfinder.Lookup("random", pathfinder.WithSeed(9), pathfinder.WithWalkLength(12))
		require.NoError(t, err)
		res, err := pf.Search(context.Background(), g, maze.At(start), maze.Location{})
		require.NoError(t, err)
		require.Len(t, res.Path, 13)
		return mazetest.Positions(res.Path)
	}
	assert.Equal(t, walk(), walk())
}

func TestLookup_Options(t *testing.T) {
	g := mazetest.Compile(t, mazetest.Loop...)
	a, b := mazetest.Node(t, g, 1, 1), mazetest.Node(t, g, 5, 3)

	pf, err := pathfinder.Lookup("ucs", pathfinder.WithSearchOptions(search.WithMaxExpansions(1)))
	require.NoError(t, err)
	res, err := pf.Search(context.Background(), g, maze.At(a), maze.At(b))
	require.NoError(t, err)
	assert.Len(t, res.Expanded, 1)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := pathfinder.Lookup("dijkstra")
	assert.ErrorIs(t, err, pathfinder.ErrUnknown)
}
