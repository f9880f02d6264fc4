package gridgraph

// ConnectedComponents finds all 4-connected regions of traversable tiles.
// Returns a slice of components; each component is a slice of tile indices
// (row-major) in discovery order.
//
// To convert an index back to (x,y), use Coordinate(idx).
//
// Time:   O(W·H).
// Memory: O(W·H) for visited flags and output.
func (gg *GridGraph) ConnectedComponents() [][]int {
	total := gg.Width * gg.Height
	seen := make([]bool, total)
	var comps [][]int
	offsets := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if !gg.Traversable(x, y) {
				continue // wall
			}
			i0 := gg.index(x, y)
			if seen[i0] {
				continue
			}
			// BFS to collect component
			queue := []int{i0}
			seen[i0] = true
			var comp []int

			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				comp = append(comp, u)
				ux, uy := gg.Coordinate(u)
				for _, d := range offsets {
					vx, vy := ux+d[0], uy+d[1]
					if !gg.Traversable(vx, vy) {
						continue
					}
					vi := gg.index(vx, vy)
					if !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}

// ComponentOf returns, for every tile index, the component number it belongs
// to, or -1 for walls.
func (gg *GridGraph) ComponentOf() []int {
	labels := make([]int, gg.Width*gg.Height)
	for i := range labels {
		labels[i] = -1
	}
	for k, comp := range gg.ConnectedComponents() {
		for _, idx := range comp {
			labels[idx] = k
		}
	}
	return labels
}

// Components holds the component label of every tile, computed in one pass,
// so that connectivity queries are O(1).
type Components struct {
	gg     *GridGraph
	labels []int
}

// Components labels the grid once; use it when asking about many tile pairs.
func (gg *GridGraph) Components() *Components {
	return &Components{gg: gg, labels: gg.ComponentOf()}
}

// Of returns the component number of (x,y), or -1 for walls and tiles out
// of bounds.
func (c *Components) Of(x, y int) int {
	if !c.gg.Traversable(x, y) {
		return -1
	}
	return c.labels[c.gg.index(x, y)]
}

// Same reports whether tiles (x1,y1) and (x2,y2) are traversable and
// connected to each other.
func (c *Components) Same(x1, y1, x2, y2 int) bool {
	a := c.Of(x1, y1)
	return a >= 0 && a == c.Of(x2, y2)
}

// SameComponent reports whether tiles (x1,y1) and (x2,y2) are traversable and
// connected to each other. Every call labels the whole grid; for repeated
// queries take Components once.
func (gg *GridGraph) SameComponent(x1, y1, x2, y2 int) bool {
	return gg.Components().Same(x1, y1, x2, y2)
}
