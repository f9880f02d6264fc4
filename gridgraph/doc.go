// Package gridgraph compiles a rectangular grid of tile costs into a sparse
// maze.Graph whose nodes are the corners, dead-ends and intersections of the maze.
//
// What:
//
//   - GridGraph wraps a validated, deep-copied [][]int cost grid (indexed [row][col]).
//   - Compile performs one row-major raster scan. Straight corridor tiles are not turned
//     into nodes; their costs are accumulated into the weight of the edge that spans them.
//   - ConnectedComponents lists the 4-connected regions of traversable tiles; Components
//     labels them once for repeated connectivity queries.
//
// Why:
//
//   - Searching tens of structural nodes instead of every tile keeps BFS/DFS/UCS/A*
//     cheap enough to run every time a pursuer needs a path.
//   - Component analysis tells a level loader that a spawn point cannot reach another.
//
// Algorithm (Compile):
//
//  1. Keep a running horizontal weight for the current row and a running vertical weight
//     per column, both starting at maze.WallCost (the sentinel).
//  2. A wall tile (cost ≥ WallThreshold) resets both running weights to the sentinel.
//  3. A traversable tile with no traversable 4-neighbor is skipped.
//  4. A horizontal pass-through tile adds its cost to the row weight; a vertical one to
//     its column weight.
//  5. Any other tile becomes a node. With a left or right neighbor it records
//     (row weight, node) in the row's pending list and resets the row weight to its own
//     cost; symmetrically for up/down.
//  6. After the scan consecutive pending entries are linked when the recorded weight is
//     below WallThreshold, rows first, then columns.
//
// Complexity:
//
//   - Compile:             O(W×H) time, O(W×H) memory for the copied grid.
//   - ConnectedComponents: O(W×H) time and memory.
//
// Options:
//
//   - WithWallThreshold(t): tiles with cost ≥ t are walls (default maze.WallCost/2).
//   - WithGeometry(g):      pixel geometry attached to the compiled graph.
//
// Errors:
//
//   - ErrEmptyGrid:       input grid has no rows or no columns.
//   - ErrNonRectangular:  rows have differing lengths.
//   - ErrInvalidCost:     a tile cost is zero or negative.
//   - ErrOptionViolation: an Option received an invalid value.
package gridgraph
