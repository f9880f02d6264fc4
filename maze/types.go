package maze

import "errors"

const (
	// WallCost is the traversal cost of a wall tile. Any cost at or above
	// WallCost/2 is treated as impassable by the compiler.
	WallCost = 10000

	// SpaceCost is the traversal cost of an open tile.
	SpaceCost = 1

	// DefaultTileSize is the edge length of one tile in pixels.
	DefaultTileSize = 16
)

var (
	// ErrNodeNotFound is returned when a node is not part of the graph.
	ErrNodeNotFound = errors.New("maze: node not found in graph")

	// ErrNotAdjacent is returned when the two nodes of a Location are not linked.
	ErrNotAdjacent = errors.New("maze: nodes are not adjacent")

	// ErrSelfLoop is returned when Connect is asked to link a node to itself.
	ErrSelfLoop = errors.New("maze: self-loop not allowed")

	// ErrInvalidCost is returned when Connect is given a non-positive cost.
	ErrInvalidCost = errors.New("maze: edge cost must be positive")
)
