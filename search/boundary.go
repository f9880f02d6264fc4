package search

import (
	"context"
	"fmt"

	"github.com/katalvlaran/mazechase/maze"
)

// Boundary holds the endpoints of one search after applying the location rules.
type Boundary struct {
	// Prefix is the node an agent is moving away from; nil when it stands on Origin.
	Prefix *maze.Node
	// Origin is where the search starts.
	Origin *maze.Node
	// Target is the goal location.
	Target maze.Location
}

// Prepare validates the inputs of a search and resolves its origin.
func Prepare(g *maze.Graph, start, target maze.Location) (Boundary, error) {
	if g == nil {
		return Boundary{}, ErrGraphNil
	}
	if start.IsZero() {
		return Boundary{}, fmt.Errorf("%w: empty start", ErrInvalidLocation)
	}
	if target.IsZero() {
		return Boundary{}, fmt.Errorf("%w: empty target", ErrInvalidLocation)
	}
	if err := g.Validate(start); err != nil {
		return Boundary{}, fmt.Errorf("%w: start %v: %v", ErrInvalidLocation, start, err)
	}
	if err := g.Validate(target); err != nil {
		return Boundary{}, fmt.Errorf("%w: target %v: %v", ErrInvalidLocation, target, err)
	}

	b := Boundary{Origin: start.First, Target: target}
	if start.Second != nil {
		b.Prefix, b.Origin = start.First, start.Second
	}
	return b, nil
}

// IsGoal reports whether reaching n ends the search.
func (b Boundary) IsGoal(n *maze.Node) bool { return b.Target.Has(n) }

// Immediate returns the minimal result when the origin is already on the target.
func (b Boundary) Immediate() (Result, bool) {
	if !b.IsGoal(b.Origin) {
		return Result{}, false
	}
	return Result{Path: b.Complete([]*maze.Node{b.Origin})}, true
}

// Complete turns a route from Origin to a target node into the final path:
// Prefix goes in front and the other target node, if any, at the end.
func (b Boundary) Complete(route []*maze.Node) []*maze.Node {
	path := make([]*maze.Node, 0, len(route)+2)
	if b.Prefix != nil {
		path = append(path, b.Prefix)
	}
	path = append(path, route...)
	if len(route) == 0 {
		return path
	}
	if other, ok := b.Target.Other(route[len(route)-1]); ok && !contains(path, other) {
		path = append(path, other)
	}
	return path
}

// Trace walks parent links back from goal and returns the route in forward order.
func Trace(parent map[*maze.Node]*maze.Node, goal *maze.Node) []*maze.Node {
	var route []*maze.Node
	for cur := goal; cur != nil; cur = parent[cur] {
		route = append(route, cur)
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// Canceled returns ctx.Err() if ctx is done, nil otherwise.
func Canceled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func contains(path []*maze.Node, n *maze.Node) bool {
	for _, p := range path {
		if p == n {
			return true
		}
	}
	return false
}
