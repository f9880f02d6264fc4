package level

import (
	"errors"

	"github.com/katalvlaran/mazechase/maze"
)

var (
	// ErrInvalidChar is returned by Parse for a character outside the format.
	ErrInvalidChar = errors.New("level: invalid character")
	// ErrNonRectangular is returned by Parse when rows differ in length.
	ErrNonRectangular = errors.New("level: rows have different lengths")
	// ErrEmpty is returned by Parse when there is no row at all.
	ErrEmpty = errors.New("level: no rows")
	// ErrNotBuilt is returned by graph accessors before Build.
	ErrNotBuilt = errors.New("level: layout is not built")
	// ErrNoSpawn is returned when a layout has no spawn of the requested kind.
	ErrNoSpawn = errors.New("level: no spawn point")
)

// Kind is the type of one tile.
type Kind uint8

const (
	Wall Kind = iota
	Space
	PursuerSpawn
	TargetSpawn
)

// Characters of the text format.
const (
	WallChar         = '='
	SpaceChar        = '.'
	PursuerSpawnChar = 'S'
	TargetSpawnChar  = 'G'
	CommentChar      = '#'
)

// KindOf maps a character to its kind.
func KindOf(ch rune) (Kind, bool) {
	switch ch {
	case WallChar:
		return Wall, true
	case SpaceChar:
		return Space, true
	case PursuerSpawnChar:
		return PursuerSpawn, true
	case TargetSpawnChar:
		return TargetSpawn, true
	default:
		return 0, false
	}
}

// Char returns the character of k.
func (k Kind) Char() rune {
	switch k {
	case Space:
		return SpaceChar
	case PursuerSpawn:
		return PursuerSpawnChar
	case TargetSpawn:
		return TargetSpawnChar
	default:
		return WallChar
	}
}

// Cost returns the traversal cost of k.
func (k Kind) Cost() int {
	if k == Wall {
		return maze.WallCost
	}
	return maze.SpaceCost
}

// Spawn reports whether k marks a point of interest.
func (k Kind) Spawn() bool { return k == PursuerSpawn || k == TargetSpawn }

func (k Kind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Space:
		return "space"
	case PursuerSpawn:
		return "pursuer-spawn"
	case TargetSpawn:
		return "target-spawn"
	default:
		return "unknown"
	}
}
