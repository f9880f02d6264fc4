package dfs_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/mazechase/dfs"
	"github.com/katalvlaran/mazechase/gridgraph"
	"github.com/katalvlaran/mazechase/maze"
)

// ExampleSearch starts between two nodes: the node the agent leaves is kept
// at the head of the route.
func ExampleSearch() {
	W, o := maze.WallCost, maze.SpaceCost
	g, _ := gridgraph.Compile([][]int{
		{o, o, o},
		{o, W, o},
		{o, o, o},
	})
	a, _ := g.NodeAt(maze.C(0, 0))
	b, _ := g.NodeAt(maze.C(2, 0))
	goal, _ := g.NodeAt(maze.C(2, 2))

	res, _ := dfs.Search(context.Background(), g, maze.Between(a, b), maze.At(goal))
	fmt.Println(maze.FormatPath(res.Path))
	// Output:
	// (0,0) -> (2,0) -> (2,2)
}
