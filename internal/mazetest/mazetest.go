// Package mazetest builds small mazes for tests.
package mazetest

import (
	"testing"

	"github.com/katalvlaran/mazechase/gridgraph"
	"github.com/katalvlaran/mazechase/maze"
)

// Costs turns rows of '=' (wall) and any other rune (cost 1) into a cost grid.
// Digits 2-9 become that cost.
func Costs(rows ...string) [][]int {
	grid := make([][]int, len(rows))
	for y, row := range rows {
		grid[y] = make([]int, len(row))
		for x, ch := range row {
			switch {
			case ch == '=':
				grid[y][x] = maze.WallCost
			case ch >= '2' && ch <= '9':
				grid[y][x] = int(ch - '0')
			default:
				grid[y][x] = maze.SpaceCost
			}
		}
	}
	return grid
}

// Compile compiles rows with default options and fails tb on error.
func Compile(tb testing.TB, rows ...string) *maze.Graph {
	tb.Helper()
	g, err := gridgraph.Compile(Costs(rows...))
	if err != nil {
		tb.Fatalf("compile: %v", err)
	}
	return g
}

// Node returns the node at (x,y) and fails tb if there is none.
func Node(tb testing.TB, g *maze.Graph, x, y int) *maze.Node {
	tb.Helper()
	n, ok := g.NodeAt(maze.C(x, y))
	if !ok {
		tb.Fatalf("no node at (%d,%d)", x, y)
	}
	return n
}

// Positions maps nodes to their coordinates.
func Positions(nodes []*maze.Node) []maze.Coord {
	out := make([]maze.Coord, len(nodes))
	for i, n := range nodes {
		out[i] = n.Pos
	}
	return out
}

// Loop is a 7×5 ring split by a vertical bar:
//
//	(1,1)--(3,1)--(5,1)
//	  |      |      |
//	(1,3)--(3,3)--(5,3)
//
// every edge costs 2.
var Loop = []string{
	"=======",
	"=.....=",
	"=.=.=.=",
	"=.....=",
	"=======",
}

// Detour links (1,1) and (7,1) by one expensive edge (cost 46) along the top
// and by three cheap edges along the bottom (2 + 6 + 2 = 10):
//
//	(1,1)-----46-----(7,1)
//	  |2               |2
//	(1,3)------6-----(7,3)
var Detour = []string{
	"=========",
	"=.99999.=",
	"=.=====.=",
	"=.......=",
	"=========",
}
