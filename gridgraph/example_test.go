package gridgraph_test

import (
	"fmt"

	"github.com/katalvlaran/mazechase/gridgraph"
	"github.com/katalvlaran/mazechase/maze"
)

// ExampleCompile compiles a small U-shaped maze. The two vertical corridors
// and the bottom corridor are compressed into weighted edges.
func ExampleCompile() {
	W, o := maze.WallCost, maze.SpaceCost
	grid := [][]int{
		{o, W, o},
		{o, W, o},
		{o, o, o},
	}
	g, err := gridgraph.Compile(grid)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, n := range g.SortedNodes() {
		fmt.Println(n.Describe())
	}
	// Output:
	// (0,0) down:(0,2)/2
	// (0,2) right:(2,2)/2 up:(0,0)/2
	// (2,0) down:(2,2)/2
	// (2,2) left:(0,2)/2 up:(2,0)/2
}
