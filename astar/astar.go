package astar

import (
	"context"

	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/search"
)

// Name is the registry name of this strategy.
const Name = "astar"

// Heuristic estimates the remaining cost from n to goal on g.
type Heuristic func(g *maze.Graph, n, goal *maze.Node) int

// PixelManhattan is the L1 distance between the pixel centres of n and goal.
func PixelManhattan(g *maze.Graph, n, goal *maze.Node) int {
	a, b := g.Center(n), g.Center(goal)
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// TileManhattan is the L1 distance between n and goal in tiles. Every tile
// costs at least 1, so it never overestimates.
func TileManhattan(_ *maze.Graph, n, goal *maze.Node) int {
	return abs(n.Pos.X-goal.Pos.X) + abs(n.Pos.Y-goal.Pos.Y)
}

// runner holds the state of one search.
type runner struct {
	graph  *maze.Graph
	opts   search.Options
	ctx    context.Context
	bound  search.Boundary
	h      Heuristic
	goal   *maze.Node
	pq     *search.Frontier
	gScore map[*maze.Node]int
	parent map[*maze.Node]*maze.Node
	closed map[*maze.Node]bool
	res    search.Result
}

// Search runs A* with PixelManhattan on g from start to target.
func Search(ctx context.Context, g *maze.Graph, start, target maze.Location, opts ...search.Option) (search.Result, error) {
	return SearchWith(ctx, g, start, target, PixelManhattan, opts...)
}

// SearchWith runs A* with heuristic h. A nil h means PixelManhattan.
// An unreachable target yields a Result with a nil Path.
func SearchWith(ctx context.Context, g *maze.Graph, start, target maze.Location, h Heuristic, opts ...search.Option) (search.Result, error) {
	o, err := search.Apply(opts)
	if err != nil {
		return search.Result{}, err
	}
	b, err := search.Prepare(g, start, target)
	if err != nil {
		return search.Result{}, err
	}
	if res, ok := b.Immediate(); ok {
		return res, nil
	}
	if h == nil {
		h = PixelManhattan
	}

	n := g.Len()
	r := &runner{
		graph:  g,
		opts:   o,
		ctx:    ctx,
		bound:  b,
		h:      h,
		goal:   b.Target.First,
		pq:     search.NewFrontier(n),
		gScore: make(map[*maze.Node]int, n),
		parent: make(map[*maze.Node]*maze.Node, n),
		closed: make(map[*maze.Node]bool, n),
		res:    search.Result{Expanded: make([]*maze.Node, 0, n)},
	}
	r.gScore[b.Origin] = 0
	r.pq.Push(search.Entry{Node: b.Origin, Priority: h(g, b.Origin, r.goal)})

	err = r.process()
	return r.res, err
}

func (r *runner) process() error {
	for r.pq.Len() > 0 {
		if err := search.Canceled(r.ctx); err != nil {
			return err
		}

		item := r.pq.Pop()
		if r.closed[item.Node] {
			continue
		}
		if item.Parent != nil {
			r.parent[item.Node] = item.Parent
		}
		if r.bound.IsGoal(item.Node) {
			r.res.Path = r.bound.Complete(search.Trace(r.parent, item.Node))
			return nil
		}
		if r.opts.Exhausted(len(r.res.Expanded)) {
			return nil
		}

		r.closed[item.Node] = true
		r.res.Expanded = append(r.res.Expanded, item.Node)
		r.opts.OnExpand(item.Node)

		for _, nb := range r.graph.Neighbors(item.Node) {
			if r.closed[nb.Node] {
				continue
			}
			cost := item.Cost + nb.Cost
			if old, seen := r.gScore[nb.Node]; seen && cost >= old {
				continue
			}
			r.gScore[nb.Node] = cost
			r.pq.Push(search.Entry{
				Node:     nb.Node,
				Parent:   item.Node,
				Cost:     cost,
				Priority: cost + r.h(r.graph, nb.Node, r.goal),
			})
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Finder is the A* search.Pathfinder.
type Finder struct {
	h    Heuristic
	opts []search.Option
}

// New returns an A* pathfinder using PixelManhattan.
func New(opts ...search.Option) *Finder { return &Finder{h: PixelManhattan, opts: opts} }

// NewWithHeuristic returns an A* pathfinder using h.
func NewWithHeuristic(h Heuristic, opts ...search.Option) *Finder {
	return &Finder{h: h, opts: opts}
}

// Search implements search.Pathfinder.
func (f *Finder) Search(ctx context.Context, g *maze.Graph, start, target maze.Location) (search.Result, error) {
	return SearchWith(ctx, g, start, target, f.h, f.opts...)
}

// Name implements search.Named.
func (f *Finder) Name() string { return Name }
