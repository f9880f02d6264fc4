package maze

import (
	"fmt"
	"strings"
)

// Edge is one half of a bidirectional link. To is nil for an empty slot.
type Edge struct {
	To   *Node
	Cost int
}

// Node is a corner, dead-end or intersection of the maze.
type Node struct {
	Pos   Coord
	edges [numDirections]Edge
}

// NewNode returns an unlinked node at c.
func NewNode(c Coord) *Node { return &Node{Pos: c} }

// Connect links a to b in direction d and b to a in the opposite direction,
// both with the given cost. It is meant for graph construction only; nodes
// must not be re-linked once they are part of a Graph.
func Connect(a *Node, d Direction, b *Node, cost int) error {
	if a == b {
		return fmt.Errorf("%w: %v", ErrSelfLoop, a.Pos)
	}
	if cost <= 0 {
		return fmt.Errorf("%w: %v->%v cost=%d", ErrInvalidCost, a.Pos, b.Pos, cost)
	}
	a.edges[d] = Edge{To: b, Cost: cost}
	b.edges[d.Opposite()] = Edge{To: a, Cost: cost}

	return nil
}

// Edge returns the link stored in slot d, ignoring any blocking applied by a Graph.
func (n *Node) Edge(d Direction) (Edge, bool) {
	e := n.edges[d]
	return e, e.To != nil
}

// Degree returns the number of linked slots.
func (n *Node) Degree() int {
	k := 0
	for _, e := range n.edges {
		if e.To != nil {
			k++
		}
	}
	return k
}

// X returns the tile column of the node.
func (n *Node) X() int { return n.Pos.X }

// Y returns the tile row of the node.
func (n *Node) Y() int { return n.Pos.Y }

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Pos.String()
}

// Describe renders the node with its links, e.g. "(1,1) left:(0,1)/1 down:(1,3)/2".
func (n *Node) Describe() string {
	var sb strings.Builder
	sb.WriteString(n.Pos.String())
	for _, d := range directions {
		if e := n.edges[d]; e.To != nil {
			fmt.Fprintf(&sb, " %s:%v/%d", d, e.To.Pos, e.Cost)
		}
	}
	return sb.String()
}

// FormatPath renders a node sequence as "(0,0) -> (4,0)".
func FormatPath(path []*Node) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = n.String()
	}
	return strings.Join(parts, " -> ")
}
