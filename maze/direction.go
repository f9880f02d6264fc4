package maze

// Direction is one of the four orthogonal moves.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// numDirections is the number of neighbor slots on a Node.
const numDirections = 4

var directions = [numDirections]Direction{Left, Right, Up, Down}

// Directions returns all directions in neighbor iteration order.
func Directions() [4]Direction { return directions }

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

// Delta returns the tile offset of one step in direction d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	default:
		return 0, 1
	}
}

// Horizontal reports whether d is Left or Right.
func (d Direction) Horizontal() bool { return d == Left || d == Right }

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "invalid"
	}
}
