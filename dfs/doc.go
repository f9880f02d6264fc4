// Package dfs implements depth-first search over a compiled maze.Graph.
//
// The search keeps an explicit LIFO stack of (node, parent) pairs instead of
// recursing, so a long corridor chain cannot grow the goroutine stack.
// Neighbors are pushed in maze.Directions() order, which means the last
// direction (down) is explored first.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V + E) for the stack (a node may be pushed once per incoming edge).
//
// Options:
//
//   - search.WithOnExpand(fn)      hook on every expansion.
//   - search.WithMaxExpansions(n)  give up after n expansions.
//
// Errors:
//
//   - search.ErrGraphNil, search.ErrInvalidLocation for bad input.
//   - search.ErrOptionViolation for a bad option.
//   - ctx.Err() when ctx is done.
//
// The returned route is valid but usually not the shortest.
package dfs
