package bfs

import (
	"context"

	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/search"
)

// Name is the registry name of this strategy.
const Name = "bfs"

// walker encapsulates mutable BFS state.
type walker struct {
	graph  *maze.Graph
	opts   search.Options
	ctx    context.Context
	bound  search.Boundary
	queue  []*maze.Node
	seen   map[*maze.Node]bool
	parent map[*maze.Node]*maze.Node
	res    search.Result
}

// Search runs breadth-first search on g from start to target.
// Returns search.ErrGraphNil or search.ErrInvalidLocation for invalid input,
// search.ErrOptionViolation for bad options, or ctx.Err() on cancellation.
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
	w := &walker{
		graph:  g,
		opts:   o,
		ctx:    ctx,
		bound:  b,
		queue:  make([]*maze.Node, 0, n),
		seen:   make(map[*maze.Node]bool, n),
		parent: make(map[*maze.Node]*maze.Node, n),
		res:    search.Result{Expanded: make([]*maze.Node, 0, n)},
	}

	// Seed queue with the origin (no parent)
	w.enqueue(b.Origin, nil)
	err = w.loop()
	return w.res, err
}

// enqueue marks n seen, records its parent and appends it to the queue.
func (w *walker) enqueue(n, parent *maze.Node) {
	w.seen[n] = true
	if parent != nil {
		w.parent[n] = parent
	}
	w.queue = append(w.queue, n)
}

// loop processes the queue until the target is reached, the queue empties,
// the expansion limit is hit or the context is cancelled.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		if err := search.Canceled(w.ctx); err != nil {
			return err
		}

		n := w.queue[0]
		w.queue = w.queue[1:]

		if w.bound.IsGoal(n) {
			w.res.Path = w.bound.Complete(search.Trace(w.parent, n))
			return nil
		}
		if w.opts.Exhausted(len(w.res.Expanded)) {
			return nil
		}
		w.expand(n)
	}
	return nil
}

// expand records n as expanded and enqueues every unseen neighbor.
func (w *walker) expand(n *maze.Node) {
	w.res.Expanded = append(w.res.Expanded, n)
	w.opts.OnExpand(n)
	for _, nb := range w.graph.Neighbors(n) {
		if !w.seen[nb.Node] {
			w.enqueue(nb.Node, n)
		}
	}
}

// Finder is the BFS search.Pathfinder.
type Finder struct {
	opts []search.Option
}

// New returns a BFS pathfinder applying opts to every search.
func New(opts ...search.Option) *Finder { return &Finder{opts: opts} }

// Search implements search.Pathfinder.
func (f *Finder) Search(ctx context.Context, g *maze.Graph, start, target maze.Location) (search.Result, error) {
	return Search(ctx, g, start, target, f.opts...)
}

// Name implements search.Named.
func (f *Finder) Name() string { return Name }
