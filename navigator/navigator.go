package navigator

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/katalvlaran/mazechase/maze"
	"github.com/sirupsen/logrus"
)

// DefaultSnapThreshold is the snap tolerance in pixels for the default tile size.
const DefaultSnapThreshold = maze.DefaultTileSize / 8

var (
	// ErrNegativeDistance is returned by MoveAlongPath for a negative budget.
	ErrNegativeDistance = errors.New("navigator: distance must be non-negative")

	// ErrOptionViolation is returned by New for an invalid option.
	ErrOptionViolation = errors.New("navigator: invalid option supplied")

	// ErrGraphNil is returned by New for a nil graph.
	ErrGraphNil = errors.New("navigator: graph is nil")
)

// Options configures a Navigator.
type Options struct {
	// SnapThreshold is the tolerance in pixels used by Snap and IsSnapWithin.
	SnapThreshold int
	// Logger receives alignment warnings.
	Logger logrus.FieldLogger

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns DefaultSnapThreshold and the standard logrus logger.
func DefaultOptions() Options {
	return Options{SnapThreshold: DefaultSnapThreshold, Logger: logrus.StandardLogger()}
}

// WithSnapThreshold sets the snap tolerance; t must be ≥ 0.
func WithSnapThreshold(t int) Option {
	return func(o *Options) {
		if t < 0 {
			o.err = fmt.Errorf("%w: snap threshold cannot be negative (%d)", ErrOptionViolation, t)
			return
		}
		o.SnapThreshold = t
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Navigator answers geometric questions about agents on one graph.
type Navigator struct {
	g    *maze.Graph
	geom maze.Geometry
	snap int
	log  logrus.FieldLogger
}

// New returns a Navigator over g.
func New(g *maze.Graph, opts ...Option) (*Navigator, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	return &Navigator{g: g, geom: g.Geometry(), snap: o.SnapThreshold, log: o.Logger}, nil
}

// Graph returns the graph the navigator works on.
func (nv *Navigator) Graph() *maze.Graph { return nv.g }

// SnapThreshold returns the snap tolerance in pixels.
func (nv *Navigator) SnapThreshold() int { return nv.snap }

// CoordPair is the tile under a rectangle and, when the rectangle straddles
// two tiles, the neighbouring tile it overlaps.
type CoordPair struct {
	First     maze.Coord
	Second    maze.Coord
	HasSecond bool
}

// Single returns a pair holding only c.
func Single(c maze.Coord) CoordPair { return CoordPair{First: c} }

// Pair returns a pair of two tiles.
func Pair(a, b maze.Coord) CoordPair { return CoordPair{First: a, Second: b, HasSecond: true} }

func (p CoordPair) String() string {
	if !p.HasSecond {
		return fmt.Sprintf("[%v]", p.First)
	}
	return fmt.Sprintf("[%v %v]", p.First, p.Second)
}

// Snap returns the tile(s) covered by a tile-sized rectangle whose top-left
// corner is topLeft. The nearest tile is rounded half to even per axis.
// When the rectangle is misaligned on both axes a warning is logged and the
// axis with the larger remainder decides; x wins only when strictly larger.
func (nv *Navigator) Snap(topLeft image.Point) CoordPair {
	size, off := nv.geom.TileSize, nv.geom.Offset
	tx := roundHalfEven(topLeft.X-off.X, size)
	ty := roundHalfEven(topLeft.Y-off.Y, size)
	rx := topLeft.X - (tx*size + off.X)
	ry := topLeft.Y - (ty*size + off.Y)
	near := maze.C(tx, ty)

	xAligned, yAligned := abs(rx) <= nv.snap, abs(ry) <= nv.snap
	switch {
	case xAligned && yAligned:
		return Single(near)
	case xAligned:
		return Pair(near, maze.C(tx, ty+sign(ry)))
	case yAligned:
		return Pair(near, maze.C(tx+sign(rx), ty))
	}

	horizontal := abs(rx) > abs(ry)
	nv.log.WithFields(logrus.Fields{
		"x": topLeft.X, "y": topLeft.Y, "horizontal": horizontal,
	}).Warn("navigator: rect not aligned with the maze grid on either axis")
	if horizontal {
		return Pair(near, maze.C(tx+sign(rx), ty))
	}
	return Pair(near, maze.C(tx, ty+sign(ry)))
}

// Locate returns the node or edge containing the tile(s) of p.
// A single tile that holds a node resolves to that node. Otherwise the
// nearest node on each side is searched along the row (a single tile or a
// horizontal pair), then along the column. The two bounds must be linked
// nodes; ok is false when no such edge exists.
func (nv *Navigator) Locate(p CoordPair) (maze.Location, bool) {
	if p.HasSecond && p.First == p.Second {
		p = Single(p.First)
	}
	if !p.HasSecond {
		if n, ok := nv.g.NodeAt(p.First); ok {
			return maze.At(n), true
		}
	}

	lo, hi := p.First, p.First
	if p.HasSecond {
		hi = p.Second
	}
	if !p.HasSecond || lo.Y == hi.Y {
		if hi.X < lo.X {
			lo, hi = hi, lo
		}
		if loc, ok := nv.bracket(lo, hi, maze.Left, maze.Right); ok {
			return loc, true
		}
	}
	if !p.HasSecond || lo.X == hi.X {
		if hi.Y < lo.Y {
			lo, hi = hi, lo
		}
		if loc, ok := nv.bracket(lo, hi, maze.Up, maze.Down); ok {
			return loc, true
		}
	}
	return maze.Location{}, false
}

// bracket scans from lo towards back and from hi towards fwd for the nearest
// nodes and returns them as an edge when they are linked.
func (nv *Navigator) bracket(lo, hi maze.Coord, back, fwd maze.Direction) (maze.Location, bool) {
	start, ok := nv.scan(lo, back)
	if !ok {
		return maze.Location{}, false
	}
	end, ok := nv.scan(hi, fwd)
	if !ok || start == end || !maze.Adjacent(start, end) {
		return maze.Location{}, false
	}
	return maze.Between(start, end), true
}

// scan walks from c in direction d, c included, until it meets a node or
// leaves the maze.
func (nv *Navigator) scan(c maze.Coord, d maze.Direction) (*maze.Node, bool) {
	for nv.inside(c) {
		if n, ok := nv.g.NodeAt(c); ok {
			return n, true
		}
		c = c.Step(d)
	}
	return nil, false
}

func (nv *Navigator) inside(c maze.Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < nv.g.Width() && c.Y < nv.g.Height()
}

// Resolve is Locate(Snap(topLeft)).
func (nv *Navigator) Resolve(topLeft image.Point) (maze.Location, bool) {
	return nv.Locate(nv.Snap(topLeft))
}

// IsSnapWithin reports whether center lies in the half-open square
// [c-t, c+t) around the centre c of n, t being the snap threshold.
func (nv *Navigator) IsSnapWithin(center image.Point, n *maze.Node) bool {
	c := nv.g.Center(n)
	box := image.Rect(c.X-nv.snap, c.Y-nv.snap, c.X+nv.snap, c.Y+nv.snap)
	return center.In(box)
}

// DirectionFrom returns the direction of the link from a to b.
func (nv *Navigator) DirectionFrom(a, b *maze.Node) (maze.Direction, bool) {
	return maze.DirectionTo(a, b)
}

// AreConnected reports whether consecutive nodes are linked. Fewer than two
// nodes are trivially connected.
func (nv *Navigator) AreConnected(nodes ...*maze.Node) bool {
	for i := 0; i+1 < len(nodes); i++ {
		if !maze.Adjacent(nodes[i], nodes[i+1]) {
			return false
		}
	}
	return true
}

// InPathBetween reports whether center is on the way from a to b. Being
// snapped to a counts as on the way; being snapped to b does not.
// Otherwise a tile-sized box around center must touch the segment joining
// the facing edges of the two node tiles.
func (nv *Navigator) InPathBetween(center image.Point, a, b *maze.Node) bool {
	if nv.IsSnapWithin(center, a) {
		return true
	}
	if nv.IsSnapWithin(center, b) {
		return false
	}
	d, ok := maze.DirectionTo(a, b)
	if !ok {
		return false
	}

	var p, q image.Point
	switch d {
	case maze.Up:
		p, q = nv.geom.MidTop(a.Pos), nv.geom.MidBottom(b.Pos)
	case maze.Down:
		p, q = nv.geom.MidBottom(a.Pos), nv.geom.MidTop(b.Pos)
	case maze.Left:
		p, q = nv.geom.MidLeft(a.Pos), nv.geom.MidRight(b.Pos)
	default:
		p, q = nv.geom.MidRight(a.Pos), nv.geom.MidLeft(b.Pos)
	}

	half := nv.geom.TileSize / 2
	tl := center.Sub(image.Pt(half, half))
	box := image.Rectangle{Min: tl, Max: tl.Add(image.Pt(nv.geom.TileSize, nv.geom.TileSize))}
	return segmentTouches(box, p, q)
}

// moveToNode moves center towards the centre of n by at most distance pixels
// and returns the new centre with the unspent budget. The reachable length
// is the truncated Euclidean distance.
func (nv *Navigator) moveToNode(center image.Point, n *maze.Node, distance int) (image.Point, int) {
	if distance == 0 {
		return center, 0
	}
	target := nv.g.Center(n)
	dx, dy := float64(target.X-center.X), float64(target.Y-center.Y)
	reach := int(math.Hypot(dx, dy))
	if distance >= reach {
		return target, distance - reach
	}
	f := float64(distance) / float64(reach)
	return image.Pt(int(float64(center.X)+dx*f), int(float64(center.Y)+dy*f)), 0
}

// MoveAlongPath advances center along path by distance pixels. Nodes left
// behind are dropped from the returned path; a node is also dropped once
// center snaps to the next one with the budget exactly spent.
func (nv *Navigator) MoveAlongPath(center image.Point, path []*maze.Node, distance int) ([]*maze.Node, image.Point, error) {
	if distance < 0 {
		return path, center, fmt.Errorf("%w: %d", ErrNegativeDistance, distance)
	}
	if len(path) <= 1 || distance == 0 {
		return path, center, nil
	}

	rest := path
	for distance > 0 && len(rest) > 1 {
		from, to := rest[0], rest[1]
		if !nv.InPathBetween(center, from, to) {
			// also the case when center already snapped to the second node
			rest = rest[1:]
			continue
		}
		center, distance = nv.moveToNode(center, to, distance)
		if distance == 0 && nv.IsSnapWithin(center, to) {
			rest = rest[1:]
		}
	}
	return rest, center, nil
}

// PathThroughNewLocation returns the part of path up to loc: through the
// first occurrence of a single node, or up to the first node of the edge
// (walked in either direction). ok is false for paths shorter than two
// nodes or when loc is not on path.
func PathThroughNewLocation(path []*maze.Node, loc maze.Location) ([]*maze.Node, bool) {
	if len(path) < 2 || loc.IsZero() {
		return nil, false
	}
	if loc.Second == nil {
		for i, n := range path {
			if n == loc.First {
				return slices.Clone(path[:i+1]), true
			}
		}
		return nil, false
	}
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		if (a == loc.First && b == loc.Second) || (a == loc.Second && b == loc.First) {
			return slices.Clone(path[:i+1]), true
		}
	}
	return nil, false
}
