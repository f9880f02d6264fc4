// Package maze defines the value types shared by every other package of mazechase:
// tile coordinates, pixel geometry, directions, graph nodes, the compiled graph and
// agent locations.
//
// What
//
//   - Coord: an immutable (X, Y) tile address (column, row).
//   - Geometry: tile size and maze-to-screen offset; maps a Coord to its pixel rectangle,
//     centre and edge midpoints. One Geometry is shared by everything built for a level.
//   - Direction: Left, Right, Up, Down. Directions() yields them in exactly that order,
//     which is also the order in which neighbor links are created by the compiler.
//   - Node: a corner, dead-end or intersection tile with up to four weighted links.
//     Every link is one half of a bidirectional edge; the other half lives on the
//     neighbor, in the opposite direction, with the same cost.
//   - Graph: the node list, a coordinate index, the maze shape and the Geometry.
//     WithoutEdge returns a filtered copy with one half-edge blocked.
//   - Location: one node (standing on it) or two adjacent nodes (moving from the
//     first to the second).
//
// Why
//
//   - Straight corridors are compressed into edge weights, so searches run over tens of
//     nodes instead of hundreds of tiles.
//   - Agents move continuously in pixel space; Location lets a search start or end in
//     the middle of an edge.
//
// Concurrency
//
//	A Graph and its nodes are read-only once NewGraph returns. Any number of goroutines
//	may search the same Graph. WithoutEdge never mutates its receiver, and the copy shares
//	node identity with the original, so paths found on a copy are comparable with paths
//	found on the live graph.
//
// Errors
//
//   - ErrNodeNotFound   a node does not belong to the graph.
//   - ErrNotAdjacent    two nodes of a Location are not linked.
//   - ErrSelfLoop       Connect was asked to link a node to itself.
//   - ErrInvalidCost    Connect was given a non-positive cost.
package maze
