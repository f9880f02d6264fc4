package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/mazechase/maze"
)

// Sentinel errors shared by all strategies.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("search: graph is nil")

	// ErrInvalidLocation is returned for an empty, foreign or broken location.
	ErrInvalidLocation = errors.New("search: invalid location")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")
)

// Result is the outcome of one search.
type Result struct {
	// Path is the route, boundary nodes included. Nil when the target is unreachable.
	Path []*maze.Node
	// Expanded lists nodes in the order the search expanded them.
	Expanded []*maze.Node
}

// Found reports whether a route was produced.
func (r Result) Found() bool { return len(r.Path) > 0 }

// Weight returns the summed edge cost of Path.
func (r Result) Weight() int { return maze.PathWeight(r.Path) }

// Pathfinder computes a route between two locations of a graph.
// Implementations must be safe for concurrent use and must not modify g.
type Pathfinder interface {
	Search(ctx context.Context, g *maze.Graph, start, target maze.Location) (Result, error)
}

// PathfinderFunc adapts a function to the Pathfinder interface.
type PathfinderFunc func(ctx context.Context, g *maze.Graph, start, target maze.Location) (Result, error)

// Search calls f.
func (f PathfinderFunc) Search(ctx context.Context, g *maze.Graph, start, target maze.Location) (Result, error) {
	return f(ctx, g, start, target)
}

// Named is implemented by pathfinders that report a short name.
type Named interface {
	Name() string
}

// NameOf returns pf's name, or "custom" when it has none.
func NameOf(pf Pathfinder) string {
	if n, ok := pf.(Named); ok {
		return n.Name()
	}
	return "custom"
}

// Empty is a Pathfinder that never finds anything.
var Empty = PathfinderFunc(func(context.Context, *maze.Graph, maze.Location, maze.Location) (Result, error) {
	return Result{}, nil
})

// Option configures a search via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the settings common to all strategies.
type Options struct {
	// OnExpand is called for every expanded node.
	OnExpand func(n *maze.Node)

	// MaxExpansions, if > 0, stops the search after that many expansions.
	MaxExpansions int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns a no-op OnExpand and no expansion limit.
func DefaultOptions() Options {
	return Options{
		OnExpand:      func(*maze.Node) {},
		MaxExpansions: 0,
	}
}

// WithOnExpand registers a callback invoked on each expansion.
func WithOnExpand(fn func(n *maze.Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithMaxExpansions bounds the number of expansions.
//
//	n > 0:  stop after n expansions
//	n == 0: no limit
//	n < 0:  invalid option → ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// Apply builds Options from defaults and opts.
func Apply(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}

// Exhausted reports whether expanded has reached the configured limit.
func (o Options) Exhausted(expanded int) bool {
	return o.MaxExpansions > 0 && expanded >= o.MaxExpansions
}
