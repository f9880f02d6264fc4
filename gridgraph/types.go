package gridgraph

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mazechase/maze"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrInvalidCost indicates a tile cost that is zero or negative.
	ErrInvalidCost = errors.New("gridgraph: tile cost must be positive")
	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("gridgraph: invalid option supplied")
)

// DefaultWallThreshold is the lowest cost treated as a wall.
const DefaultWallThreshold = maze.WallCost / 2

// Option configures grid compilation.
type Option func(*GridOptions)

// GridOptions contains tunable parameters for grid compilation.
type GridOptions struct {
	// WallThreshold is the minimum tile cost considered impassable.
	WallThreshold int
	// Geometry is attached to the compiled graph.
	Geometry maze.Geometry

	err error
}

// DefaultGridOptions returns WallThreshold=maze.WallCost/2 and 16px tiles at offset (0,0).
func DefaultGridOptions() GridOptions {
	return GridOptions{
		WallThreshold: DefaultWallThreshold,
		Geometry:      maze.DefaultGeometry(),
	}
}

// WithWallThreshold sets the wall threshold; t must be positive.
func WithWallThreshold(t int) Option {
	return func(o *GridOptions) {
		if t <= 0 {
			o.err = fmt.Errorf("%w: WallThreshold must be positive (%d)", ErrOptionViolation, t)
			return
		}
		o.WallThreshold = t
	}
}

// WithGeometry sets the pixel geometry of the compiled graph; TileSize must be positive.
func WithGeometry(g maze.Geometry) Option {
	return func(o *GridOptions) {
		if g.TileSize <= 0 {
			o.err = fmt.Errorf("%w: TileSize must be positive (%d)", ErrOptionViolation, g.TileSize)
			return
		}
		o.Geometry = g
	}
}

// GridGraph is an immutable, validated copy of a cost grid.
// Costs[y][x] holds the cost of the tile in row y, column x.
type GridGraph struct {
	Width, Height int
	Costs         [][]int
	WallThreshold int
	Geometry      maze.Geometry
}
