// Package ucs implements uniform-cost search (Dijkstra's algorithm) over a
// compiled maze.Graph and returns the cheapest route between two locations.
//
// What:
//
//   - Pops nodes in non-decreasing accumulated cost from a search.Frontier.
//   - Equal costs pop in insertion order; neighbors are pushed in
//     maze.Directions() order, so results are reproducible.
//   - The goal test happens on pop, which is what makes the route optimal.
//   - Decrease-key is lazy: a cheaper entry is pushed and stale entries are
//     skipped once their node is closed.
//
// Complexity:
//
//   - Time:   O((V + E) log V)
//   - Memory: O(V + E) in the worst case for the frontier.
//
// Options:
//
//   - search.WithOnExpand(fn), search.WithMaxExpansions(n).
package ucs
