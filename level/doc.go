// Package level reads maze levels from text and turns them into graphs.
//
// A level is a rectangle of characters, one row per line:
//
//	=  wall
//	.  open floor
//	S  pursuer spawn (open floor)
//	G  target spawn (open floor)
//
// Blank lines and lines starting with '#' are skipped. Parse keeps the tile
// kinds, the traversal costs and the spawn points; Build compiles the graph
// with gridgraph. A Layout is read-only once built and may be shared.
//
// Watch reloads a level file whenever it is written, for servers that pick
// up edited levels without a restart.
package level
