// Package astar implements A* search over a compiled maze.Graph.
//
// Entries pop in order of f = g + h where g is the accumulated edge cost and
// h is a Heuristic estimate from a node to the primary target node (the
// first node of the target location). The default heuristic, PixelManhattan,
// measures the L1 distance between pixel centres. Pixel distance and tile
// costs are different units: with 16-pixel tiles the estimate can exceed the
// true remaining cost, so the route is not guaranteed to be the cheapest.
// The chase behaviour is tuned around this, so it is kept as is.
//
// Closed nodes are never reopened, even when a cheaper way to them turns up.
//
// Complexity:
//
//   - Time:   O((V + E) log V)
//   - Memory: O(V + E)
package astar
