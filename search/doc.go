// Package search defines the contract shared by every pathfinding strategy of
// mazechase: the Pathfinder interface, the Result type, common options and the
// boundary rules that let a search start or end in the middle of an edge.
//
// What
//
//   - Pathfinder: Search(ctx, graph, start, target) (Result, error).
//   - PathfinderFunc: adapter turning a plain function into a Pathfinder.
//   - Result: Path (route to follow) and Expanded (nodes in expansion order, for diagnostics).
//   - Boundary: resolves the origin of a search and completes a found route.
//
// Boundary rules
//
//   - start = [A B] (moving from A to B): the search starts at B and A is prepended to
//     the returned path.
//   - target = [C D]: reaching either C or D ends the search; the other node is appended
//     unless it is already on the path.
//   - origin already on the target: the minimal path is returned at once, nothing is
//     expanded.
//   - unreachable target: Result{Path: nil, Expanded: ...}, never an error.
//
// Options
//
//   - WithOnExpand(fn):       called for every node a search expands.
//   - WithMaxExpansions(n):   give up (empty path) after n expansions; 0 means no limit.
//
// Errors
//
//   - ErrGraphNil          graph pointer is nil.
//   - ErrInvalidLocation   empty location, foreign node or non-adjacent pair.
//   - ErrOptionViolation   an Option received an invalid value.
//   - ctx.Err()            the context was cancelled during the search.
package search
