package dfs

import (
	"context"

	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/search"
)

// Name is the registry name of this strategy.
const Name = "dfs"

// frame is one pending stack entry.
type frame struct {
	node   *maze.Node
	parent *maze.Node
}

// dfsWalker encapsulates state during DFS.
type dfsWalker struct {
	graph  *maze.Graph
	opts   search.Options
	ctx    context.Context
	bound  search.Boundary
	stack  []frame
	closed map[*maze.Node]bool
	parent map[*maze.Node]*maze.Node
	res    search.Result
}

// Search performs depth-first search on g from start to target.
// An unreachable target yields a Result with a nil Path.
func Search(ctx context.Context, g *maze.Graph, start, target maze.Location, opts ...search.Option) (search.Result, error) {
	// 1. Options and boundary
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

	// 2. Walker with capacity hints
	n := g.Len()
	w := &dfsWalker{
		graph:  g,
		opts:   o,
		ctx:    ctx,
		bound:  b,
		stack:  []frame{{node: b.Origin}},
		closed: make(map[*maze.Node]bool, n),
		parent: make(map[*maze.Node]*maze.Node, n),
		res:    search.Result{Expanded: make([]*maze.Node, 0, n)},
	}

	// 3. Traverse
	err = w.traverse()
	return w.res, err
}

// traverse pops frames until the target is reached or the stack empties.
func (w *dfsWalker) traverse() error {
	for len(w.stack) > 0 {
		if err := search.Canceled(w.ctx); err != nil {
			return err
		}

		top := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if w.closed[top.node] {
			continue
		}
		if top.parent != nil {
			w.parent[top.node] = top.parent
		}

		if w.bound.IsGoal(top.node) {
			w.res.Path = w.bound.Complete(search.Trace(w.parent, top.node))
			return nil
		}
		if w.opts.Exhausted(len(w.res.Expanded)) {
			return nil
		}

		w.closed[top.node] = true
		w.res.Expanded = append(w.res.Expanded, top.node)
		w.opts.OnExpand(top.node)
		for _, nb := range w.graph.Neighbors(top.node) {
			if !w.closed[nb.Node] {
				w.stack = append(w.stack, frame{node: nb.Node, parent: top.node})
			}
		}
	}
	return nil
}

// Finder is the DFS search.Pathfinder.
type Finder struct {
	opts []search.Option
}

// New returns a DFS pathfinder applying opts to every search.
func New(opts ...search.Option) *Finder { return &Finder{opts: opts} }

// Search implements search.Pathfinder.
func (f *Finder) Search(ctx context.Context, g *maze.Graph, start, target maze.Location) (search.Result, error) {
	return Search(ctx, g, start, target, f.opts...)
}

// Name implements search.Named.
func (f *Finder) Name() string { return Name }
