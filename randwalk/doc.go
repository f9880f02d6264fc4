// Package randwalk produces short random walks over a maze.Graph.
//
// A walk ignores the target: starting from the origin of the start location
// it takes PathLength steps, each to a uniformly chosen neighbor (stepping
// back is allowed). The nodes of the start location lead the path. A walk
// that reaches a node with no usable link stops early.
//
// Randomness comes from an explicit *rand.Rand so walks are reproducible
// with WithSeed. A Walker is safe for concurrent use.
package randwalk
