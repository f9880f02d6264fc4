package bfs_test

import (
	"testing"

	"github.com/katalvlaran/mazechase/bfs"
	"github.com/katalvlaran/mazechase/internal/searchtest"
)

// BenchmarkBFS_Pillars measures BFS corner to corner on a 129×129 open floor.
// Complexity: O(V + E)
func BenchmarkBFS_Pillars(b *testing.B) {
	searchtest.Bench(b, bfs.New())
}
