package maze

import (
	"fmt"
	"image"
	"sort"
)

// halfEdge identifies one directed link.
type halfEdge struct {
	from *Node
	dir  Direction
}

// Neighbor is a traversable link as seen through a Graph.
type Neighbor struct {
	Dir  Direction
	Node *Node
	Cost int
}

// Graph is a compiled maze: nodes, a coordinate index, the maze shape and its
// pixel geometry. It is read-only after NewGraph.
type Graph struct {
	nodes   []*Node
	index   map[Coord]*Node
	sorted  []*Node
	geom    Geometry
	width   int
	height  int
	blocked map[halfEdge]struct{}
}

// NewGraph wraps nodes (kept in the given order) into a Graph over a maze of
// width×height tiles. The coordinate index is built from nodes sorted by (x, y).
func NewGraph(nodes []*Node, geom Geometry, width, height int) *Graph {
	sorted := make([]*Node, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Pos.Less(sorted[j].Pos) })

	index := make(map[Coord]*Node, len(nodes))
	for _, n := range sorted {
		index[n.Pos] = n
	}
	own := make([]*Node, len(nodes))
	copy(own, nodes)

	return &Graph{
		nodes:  own,
		index:  index,
		sorted: sorted,
		geom:   geom,
		width:  width,
		height: height,
	}
}

// Nodes returns the nodes in compilation order. The slice must not be modified.
func (g *Graph) Nodes() []*Node { return g.nodes }

// SortedNodes returns the nodes ordered by (x, y). The slice must not be modified.
func (g *Graph) SortedNodes() []*Node { return g.sorted }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// NodeAt returns the node at c, if any.
func (g *Graph) NodeAt(c Coord) (*Node, bool) {
	n, ok := g.index[c]
	return n, ok
}

// Contains reports whether n belongs to g.
func (g *Graph) Contains(n *Node) bool {
	if n == nil {
		return false
	}
	return g.index[n.Pos] == n
}

// Width returns the maze width in tiles.
func (g *Graph) Width() int { return g.width }

// Height returns the maze height in tiles.
func (g *Graph) Height() int { return g.height }

// Geometry returns the pixel geometry of the maze.
func (g *Graph) Geometry() Geometry { return g.geom }

// Center returns the pixel centre of n.
func (g *Graph) Center(n *Node) image.Point { return g.geom.Center(n.Pos) }

// Edge returns the link of n in direction d unless it is empty or blocked.
func (g *Graph) Edge(n *Node, d Direction) (Edge, bool) {
	e, ok := n.Edge(d)
	if !ok {
		return Edge{}, false
	}
	if _, blocked := g.blocked[halfEdge{from: n, dir: d}]; blocked {
		return Edge{}, false
	}
	return e, true
}

// Neighbors returns the traversable links of n in direction order.
func (g *Graph) Neighbors(n *Node) []Neighbor {
	out := make([]Neighbor, 0, numDirections)
	for _, d := range directions {
		if e, ok := g.Edge(n, d); ok {
			out = append(out, Neighbor{Dir: d, Node: e.To, Cost: e.Cost})
		}
	}
	return out
}

// Blocked reports whether the half-edge of n in direction d is blocked in g.
func (g *Graph) Blocked(n *Node, d Direction) bool {
	_, ok := g.blocked[halfEdge{from: n, dir: d}]
	return ok
}

// WithoutEdge returns a copy of g in which the half-edge leaving from in
// direction d is not traversable. The reverse half-edge stays usable.
// Nodes are shared with g; g itself is not modified.
//
// Complexity: O(B) where B is the number of already blocked half-edges.
func (g *Graph) WithoutEdge(from *Node, d Direction) *Graph {
	blocked := make(map[halfEdge]struct{}, len(g.blocked)+1)
	for k := range g.blocked {
		blocked[k] = struct{}{}
	}
	blocked[halfEdge{from: from, dir: d}] = struct{}{}

	return &Graph{
		nodes:   g.nodes,
		index:   g.index,
		sorted:  g.sorted,
		geom:    g.geom,
		width:   g.width,
		height:  g.height,
		blocked: blocked,
	}
}

// Validate checks that l belongs to g and, for a two-node location, that the
// nodes are linked.
func (g *Graph) Validate(l Location) error {
	for _, n := range l.Nodes() {
		if !g.Contains(n) {
			return fmt.Errorf("%w: %v", ErrNodeNotFound, n)
		}
	}
	if l.Second != nil && !Adjacent(l.First, l.Second) {
		return fmt.Errorf("%w: %v and %v", ErrNotAdjacent, l.First, l.Second)
	}
	return nil
}

// Adjacent reports whether a links directly to b.
func Adjacent(a, b *Node) bool {
	_, ok := DirectionTo(a, b)
	return ok
}

// DirectionTo returns the slot of a that links to b.
func DirectionTo(a, b *Node) (Direction, bool) {
	for _, d := range directions {
		if e := a.edges[d]; e.To != nil && e.To == b {
			return d, true
		}
	}
	return 0, false
}

// PathWeight sums the edge costs along path. Consecutive nodes that are not
// linked contribute nothing.
func PathWeight(path []*Node) int {
	total := 0
	for i := 0; i+1 < len(path); i++ {
		if d, ok := DirectionTo(path[i], path[i+1]); ok {
			total += path[i].edges[d].Cost
		}
	}
	return total
}
