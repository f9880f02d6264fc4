package ucs

import (
	"context"

	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/search"
)

// Name is the registry name of this strategy.
const Name = "ucs"

// runner holds the state of one search.
type runner struct {
	graph  *maze.Graph
	opts   search.Options
	ctx    context.Context
	bound  search.Boundary
	pq     *search.Frontier
	dist   map[*maze.Node]int
	parent map[*maze.Node]*maze.Node
	closed map[*maze.Node]bool
	res    search.Result
}

// Search runs uniform-cost search on g from start to target.
// An unreachable target yields a Result with a nil Path.
func Search(ctx context.Context, g *maze.Graph, start, target maze.Location, opts ...search.Option) (search.Result, error) {
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

	n := g.Len()
	r := &runner{
		graph:  g,
		opts:   o,
		ctx:    ctx,
		bound:  b,
		pq:     search.NewFrontier(n),
		dist:   make(map[*maze.Node]int, n),
		parent: make(map[*maze.Node]*maze.Node, n),
		closed: make(map[*maze.Node]bool, n),
		res:    search.Result{Expanded: make([]*maze.Node, 0, n)},
	}
	r.dist[b.Origin] = 0
	r.pq.Push(search.Entry{Node: b.Origin})

	err = r.process()
	return r.res, err
}

// process pops entries until the goal is popped or the frontier is empty.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		if err := search.Canceled(r.ctx); err != nil {
			return err
		}

		// 1) Smallest accumulated cost; skip stale entries
		item := r.pq.Pop()
		if r.closed[item.Node] {
			continue
		}
		if item.Parent != nil {
			r.parent[item.Node] = item.Parent
		}

		// 2) Goal test on pop
		if r.bound.IsGoal(item.Node) {
			r.res.Path = r.bound.Complete(search.Trace(r.parent, item.Node))
			return nil
		}
		if r.opts.Exhausted(len(r.res.Expanded)) {
			return nil
		}

		// 3) Close and relax
		r.closed[item.Node] = true
		r.res.Expanded = append(r.res.Expanded, item.Node)
		r.opts.OnExpand(item.Node)
		r.relax(item)
	}
	return nil
}

// relax pushes every open neighbor reached more cheaply through item.
func (r *runner) relax(item search.Entry) {
	for _, nb := range r.graph.Neighbors(item.Node) {
		if r.closed[nb.Node] {
			continue
		}
		cost := item.Cost + nb.Cost
		if old, seen := r.dist[nb.Node]; seen && cost >= old {
			continue
		}
		r.dist[nb.Node] = cost
		r.pq.Push(search.Entry{Node: nb.Node, Parent: item.Node, Cost: cost, Priority: cost})
	}
}

// Finder is the UCS search.Pathfinder.
type Finder struct {
	opts []search.Option
}

// New returns a UCS pathfinder applying opts to every search.
func New(opts ...search.Option) *Finder { return &Finder{opts: opts} }

// Search implements search.Pathfinder.
func (f *Finder) Search(ctx context.Context, g *maze.Graph, start, target maze.Location) (search.Result, error) {
	return Search(ctx, g, start, target, f.opts...)
}

// Name implements search.Named.
func (f *Finder) Name() string { return Name }
