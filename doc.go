// Package mazechase is the pathfinding core of a maze chase: pursuers hunt a
// wandering target through a tile maze compiled into a graph of corners,
// dead-ends and intersections.
//
// What is in the box:
//
//	maze/        coordinates, directions, nodes, half-edges, locations and the read-only Graph
//	gridgraph/   compiles a cost grid into a maze.Graph in one raster scan
//	navigator/   pixel ↔ tile mapping, snapping, locating and moving along paths
//	search/      the Pathfinder contract, shared options and location boundaries
//	bfs/ dfs/ ucs/ astar/ randwalk/  the strategies
//	pathfinder/  strategy registry by name
//	dispatcher/  worker pool, target tracking, path trimming and conflict rerouting
//	agent/       the Pursuer and the tweened Wanderer target
//	level/       level text format, spawn points and hot reload
//	stats/       search measurement, SQLite and CSV sinks
//	render/      PNG drawing of a level with a search overlaid
//	chase/       one running chase, advanced frame by frame
//	server/      HTTP and websocket surface
//	config/      YAML configuration
//
// Quick ASCII example, a level and its graph:
//
//	=======        (1,1)──(3,1)──(5,1)
//	=S...G=          │      │      │
//	=.=.=.=        (1,3)──(3,3)──(5,3)
//	=.....=
//	=======
//
// Commands live under cmd/: mazepath runs searches from the shell,
// mazechase plays a chase in the terminal and mazeserver serves a level.
package mazechase
