package level

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/katalvlaran/mazechase/gridgraph"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/navigator"
)

// Layout is a parsed level: tile kinds, traversal costs, spawn points and,
// after Build, the compiled graph.
type Layout struct {
	kinds  [][]Kind
	costs  [][]int
	spawns map[Kind][]maze.Coord
	grid   *gridgraph.GridGraph
	graph  *maze.Graph
}

// Parse reads a level from r.
func Parse(r io.Reader) (*Layout, error) {
	l := &Layout{spawns: make(map[Kind][]maze.Coord)}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimRight(scanner.Text(), "\r")
		if s == "" || s[0] == CommentChar {
			continue
		}
		y := len(l.kinds)
		row := make([]Kind, 0, len(s))
		for col, ch := range []rune(s) {
			k, ok := KindOf(ch)
			if !ok {
				return nil, fmt.Errorf("%w %q at line %d, column %d", ErrInvalidChar, ch, line, col+1)
			}
			if k.Spawn() {
				l.spawns[k] = append(l.spawns[k], maze.C(len(row), y))
			}
			row = append(row, k)
		}
		if y > 0 && len(row) != len(l.kinds[0]) {
			return nil, fmt.Errorf("%w: line %d has %d tiles, expected %d", ErrNonRectangular, line, len(row), len(l.kinds[0]))
		}
		l.kinds = append(l.kinds, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("level: read: %w", err)
	}
	if len(l.kinds) == 0 || len(l.kinds[0]) == 0 {
		return nil, ErrEmpty
	}

	l.costs = make([][]int, len(l.kinds))
	for y, row := range l.kinds {
		l.costs[y] = make([]int, len(row))
		for x, k := range row {
			l.costs[y][x] = k.Cost()
		}
	}
	return l, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Layout, error) { return Parse(strings.NewReader(s)) }

// Load reads and parses the level file at path.
func Load(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	defer f.Close()
	l, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Build compiles the graph. Calling it again recompiles with opts.
func (l *Layout) Build(opts ...gridgraph.Option) error {
	gg, err := gridgraph.NewGridGraph(l.costs, opts...)
	if err != nil {
		return fmt.Errorf("level: build: %w", err)
	}
	g, err := gg.Compile()
	if err != nil {
		return fmt.Errorf("level: build: %w", err)
	}
	l.grid, l.graph = gg, g
	return nil
}

// Stranded returns the spawn points, of every kind, that cannot reach the
// first target spawn, in reading order.
func (l *Layout) Stranded() ([]maze.Coord, error) {
	if l.grid == nil {
		return nil, ErrNotBuilt
	}
	targets := l.spawns[TargetSpawn]
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoSpawn, TargetSpawn)
	}
	home := targets[0]
	comps := l.grid.Components()
	var out []maze.Coord
	for _, k := range []Kind{PursuerSpawn, TargetSpawn} {
		for _, c := range l.spawns[k] {
			if !comps.Same(home.X, home.Y, c.X, c.Y) {
				out = append(out, c)
			}
		}
	}
	sortCoords(out)
	return out, nil
}

func sortCoords(cs []maze.Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Y != cs[j].Y {
			return cs[i].Y < cs[j].Y
		}
		return cs[i].X < cs[j].X
	})
}

// Graph returns the compiled graph, or ErrNotBuilt.
func (l *Layout) Graph() (*maze.Graph, error) {
	if l.graph == nil {
		return nil, ErrNotBuilt
	}
	return l.graph, nil
}

// Width returns the number of columns.
func (l *Layout) Width() int { return len(l.kinds[0]) }

// Height returns the number of rows.
func (l *Layout) Height() int { return len(l.kinds) }

// Kind returns the kind of tile c; tiles outside the layout are walls.
func (l *Layout) Kind(c maze.Coord) Kind {
	if c.X < 0 || c.Y < 0 || c.Y >= len(l.kinds) || c.X >= len(l.kinds[c.Y]) {
		return Wall
	}
	return l.kinds[c.Y][c.X]
}

// Costs returns a copy of the cost grid.
func (l *Layout) Costs() [][]int {
	out := make([][]int, len(l.costs))
	for y, row := range l.costs {
		out[y] = append([]int(nil), row...)
	}
	return out
}

// Spawns returns the spawn points of kind k in reading order.
func (l *Layout) Spawns(k Kind) []maze.Coord {
	return append([]maze.Coord(nil), l.spawns[k]...)
}

// SpawnNodes returns, for every spawn point of kind k, the graph node on it
// or, inside a corridor, the first node of the corridor's edge.
func (l *Layout) SpawnNodes(k Kind) ([]*maze.Node, error) {
	g, err := l.Graph()
	if err != nil {
		return nil, err
	}
	coords := l.spawns[k]
	if len(coords) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoSpawn, k)
	}
	nv, err := navigator.New(g)
	if err != nil {
		return nil, err
	}
	out := make([]*maze.Node, 0, len(coords))
	for _, c := range coords {
		loc, ok := nv.Locate(navigator.Single(c))
		if !ok {
			return nil, fmt.Errorf("%w: %v %v is not on the graph", ErrNoSpawn, k, c)
		}
		out = append(out, loc.First)
	}
	return out, nil
}

// String renders the layout back into the text format.
func (l *Layout) String() string {
	var b strings.Builder
	for _, row := range l.kinds {
		for _, k := range row {
			b.WriteRune(k.Char())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
