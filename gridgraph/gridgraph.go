package gridgraph

import "fmt"

// NewGridGraph constructs a GridGraph from a non-empty, rectangular 2D slice.
// It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if grid has no rows or no columns,
// ErrNonRectangular if any row length differs, ErrInvalidCost for a
// non-positive tile and ErrOptionViolation for a bad Option.
// Algorithmic complexity: O(W×H) time and memory.
func NewGridGraph(costs [][]int, opts ...Option) (*GridGraph, error) {
	o := DefaultGridOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if len(costs) == 0 || len(costs[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(costs), len(costs[0])
	for _, row := range costs {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	// Deep copy to prevent external mutation
	cells := make([][]int, h)
	for y := 0; y < h; y++ {
		cells[y] = make([]int, w)
		for x, c := range costs[y] {
			if c <= 0 {
				return nil, fmt.Errorf("%w: (%d,%d)=%d", ErrInvalidCost, x, y, c)
			}
			cells[y][x] = c
		}
	}

	return &GridGraph{
		Width:         w,
		Height:        h,
		Costs:         cells,
		WallThreshold: o.WallThreshold,
		Geometry:      o.Geometry,
	}, nil
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// Traversable reports whether (x,y) is inside the grid and not a wall.
// Complexity: O(1).
func (gg *GridGraph) Traversable(x, y int) bool {
	return gg.InBounds(x, y) && gg.Costs[y][x] < gg.WallThreshold
}

// index maps (x,y) to a row‑major index: y*Width + x.
// Complexity: O(1).
func (gg *GridGraph) index(x, y int) int {
	return y*gg.Width + x
}

// Coordinate converts a row‑major index back to (x,y).
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) (x, y int) {
	return idx % gg.Width, idx / gg.Width
}
