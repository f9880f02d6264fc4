package gridgraph

import (
	"github.com/katalvlaran/mazechase/maze"
)

// pending is a node waiting to be linked to the previous node of its row or
// column, together with the weight accumulated since that previous node.
type pending struct {
	weight int
	node   *maze.Node
}

// compiler holds the mutable state of one raster scan.
type compiler struct {
	gg         *GridGraph
	nodes      []*maze.Node
	rows       [][]pending // per row, left to right
	cols       [][]pending // per column, top to bottom
	rowWeight  int         // running horizontal weight of the current row
	colWeights []int       // running vertical weight per column
	sentinel   int         // weight that can never form an edge
}

// Compile validates costs and compiles them into a maze graph.
// See the package documentation for the algorithm.
func Compile(costs [][]int, opts ...Option) (*maze.Graph, error) {
	gg, err := NewGridGraph(costs, opts...)
	if err != nil {
		return nil, err
	}
	return gg.Compile()
}

// Compile scans the grid once and returns the graph of its structural tiles.
// Nodes keep scan order; the graph index is sorted by (x, y).
func (gg *GridGraph) Compile() (*maze.Graph, error) {
	// 1) Prepare accumulators at the sentinel
	c := &compiler{
		gg:         gg,
		rows:       make([][]pending, gg.Height),
		cols:       make([][]pending, gg.Width),
		colWeights: make([]int, gg.Width),
		sentinel:   max(maze.WallCost, gg.WallThreshold),
	}
	for x := range c.colWeights {
		c.colWeights[x] = c.sentinel
	}

	// 2) Raster scan, left to right then top to bottom
	for y := 0; y < gg.Height; y++ {
		c.rowWeight = c.sentinel
		for x := 0; x < gg.Width; x++ {
			c.processTile(x, y)
		}
	}

	// 3) Link pending nodes, rows first
	if err := c.connect(); err != nil {
		return nil, err
	}

	return maze.NewGraph(c.nodes, gg.Geometry, gg.Width, gg.Height), nil
}

// processTile classifies the tile at (x,y) as wall, isolated, pass-through or node.
func (c *compiler) processTile(x, y int) {
	gg := c.gg
	cost := gg.Costs[y][x]
	if cost >= gg.WallThreshold {
		c.rowWeight = c.sentinel
		c.colWeights[x] = c.sentinel
		return
	}

	left := gg.Traversable(x-1, y)
	right := gg.Traversable(x+1, y)
	up := gg.Traversable(x, y-1)
	down := gg.Traversable(x, y+1)

	switch {
	case !left && !right && !up && !down:
		return
	case left && right && !up && !down:
		c.rowWeight += cost
		return
	case up && down && !left && !right:
		c.colWeights[x] += cost
		return
	}

	node := maze.NewNode(maze.C(x, y))
	if left || right {
		c.rows[y] = append(c.rows[y], pending{weight: c.rowWeight, node: node})
		c.rowWeight = cost
	}
	if up || down {
		c.cols[x] = append(c.cols[x], pending{weight: c.colWeights[x], node: node})
		c.colWeights[x] = cost
	}
	c.nodes = append(c.nodes, node)
}

// connect links consecutive pending entries whose weight is below the wall threshold.
func (c *compiler) connect() error {
	for _, row := range c.rows {
		for i := 0; i+1 < len(row); i++ {
			next := row[i+1]
			if next.weight >= c.gg.WallThreshold {
				continue
			}
			if err := maze.Connect(row[i].node, maze.Right, next.node, next.weight); err != nil {
				return err
			}
		}
	}
	for _, col := range c.cols {
		for i := 0; i+1 < len(col); i++ {
			next := col[i+1]
			if next.weight >= c.gg.WallThreshold {
				continue
			}
			if err := maze.Connect(col[i].node, maze.Down, next.node, next.weight); err != nil {
				return err
			}
		}
	}
	return nil
}
