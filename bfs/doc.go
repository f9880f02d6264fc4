// Package bfs provides breadth-first search over a compiled maze.Graph,
// returning the route with the fewest edges between two locations.
//
// What
//
//   - Explores nodes in non-decreasing edge count from the origin.
//   - Neighbors are enqueued in maze.Directions() order (left, right, up, down),
//     so the visit sequence is fully reproducible.
//   - Follows the search package boundary rules for mid-edge start and target locations.
//   - Edge costs are ignored: the route minimises hops, not weight.
//
// Why
//
//   - The cheapest strategy to run; a pursuer using it takes the route with the fewest
//     turns, which is not always the shortest in tiles.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V) for queue, parent links and the seen set.
//
// Usage
//
//	res, err := bfs.Search(ctx, g, maze.At(from), maze.Between(a, b))
//	if err != nil {
//	    // search.ErrGraphNil, search.ErrInvalidLocation, search.ErrOptionViolation or ctx.Err()
//	}
//	if !res.Found() {
//	    // target unreachable
//	}
//
// Options
//
//   - search.WithOnExpand(fn):     hook on every expansion.
//   - search.WithMaxExpansions(n): give up after n expansions.
package bfs
