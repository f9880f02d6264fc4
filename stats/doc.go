// Package stats measures pathfinders.
//
// Monitor wraps a search.Pathfinder and records, for every search, the wall
// time, the bytes allocated, the number of expanded nodes and the length and
// weight of the path. Samples go to any number of Sinks: a SQLite Store that
// aggregates per algorithm, or a CSVSink for spreadsheets.
//
//	store, err := stats.Open("stats.db")
//	...
//	pf := stats.NewMonitor(astar.New(), stats.WithSink(store))
//
// Sinks are called from the goroutine running the search and must be safe
// for concurrent use; Store and CSVSink are.
package stats
