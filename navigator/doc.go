// Package navigator relates continuous pixel positions to a compiled
// maze.Graph.
//
// Agents move in pixels while searches run on nodes. The navigator bridges
// the two:
//
//   - Snap and Resolve turn a rectangle's top-left corner into the tile(s)
//     it covers and then into a maze.Location (a node or an edge).
//   - IsSnapWithin and InPathBetween classify a rectangle's centre against
//     nodes and edges.
//   - MoveAlongPath advances a centre along a path by a pixel budget and
//     drops the nodes it leaves behind.
//   - PathThroughNewLocation trims a path at a location the target has moved
//     to, so pursuers can keep the part that is still valid.
//
// All methods are read-only over the graph and safe for concurrent use.
package navigator
