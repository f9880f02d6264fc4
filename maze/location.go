package maze

import "fmt"

// Location is where an agent is relative to the graph: on First when Second is
// nil, otherwise between First and Second, moving towards Second.
// Locations compare with ==; order matters.
type Location struct {
	First  *Node
	Second *Node
}

// At returns the location of an agent standing on n.
func At(n *Node) Location { return Location{First: n} }

// Between returns the location of an agent moving from a to b.
func Between(a, b *Node) Location { return Location{First: a, Second: b} }

// IsZero reports whether l holds no node.
func (l Location) IsZero() bool { return l.First == nil }

// OnNode reports whether l is a single node.
func (l Location) OnNode() bool { return l.First != nil && l.Second == nil }

// Len returns 0, 1 or 2.
func (l Location) Len() int {
	switch {
	case l.First == nil:
		return 0
	case l.Second == nil:
		return 1
	default:
		return 2
	}
}

// Nodes returns the nodes of l in order.
func (l Location) Nodes() []*Node {
	switch l.Len() {
	case 0:
		return nil
	case 1:
		return []*Node{l.First}
	default:
		return []*Node{l.First, l.Second}
	}
}

// Has reports whether n is one of the nodes of l.
func (l Location) Has(n *Node) bool {
	return n != nil && (l.First == n || l.Second == n)
}

// Other returns the node of a two-node location that is not n.
func (l Location) Other(n *Node) (*Node, bool) {
	switch {
	case l.Second == nil:
		return nil, false
	case l.First == n:
		return l.Second, true
	case l.Second == n:
		return l.First, true
	default:
		return nil, false
	}
}

// Reversed swaps the nodes of a two-node location.
func (l Location) Reversed() Location {
	if l.Second == nil {
		return l
	}
	return Location{First: l.Second, Second: l.First}
}

func (l Location) String() string {
	switch l.Len() {
	case 0:
		return "[]"
	case 1:
		return fmt.Sprintf("[%v]", l.First)
	default:
		return fmt.Sprintf("[%v %v]", l.First, l.Second)
	}
}
