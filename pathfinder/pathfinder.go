// Package pathfinder maps strategy names to search.Pathfinder implementations.
package pathfinder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/mazechase/astar"
	"github.com/katalvlaran/mazechase/bfs"
	"github.com/katalvlaran/mazechase/dfs"
	"github.com/katalvlaran/mazechase/randwalk"
	"github.com/katalvlaran/mazechase/search"
	"github.com/katalvlaran/mazechase/ucs"
)

// ErrUnknown is returned by Lookup for a name with no strategy.
var ErrUnknown = errors.New("pathfinder: unknown algorithm")

// Options holds the settings applied to a looked-up strategy.
type Options struct {
	// Search is passed to bfs, dfs, ucs and astar.
	Search []search.Option
	// Seed seeds the random walk; zero means seeded from the clock.
	Seed int64
	// WalkLength overrides randwalk.DefaultPathLength when > 0.
	WalkLength int
}

// Option configures Lookup.
type Option func(*Options)

// WithSearchOptions forwards opts to the graph searches.
func WithSearchOptions(opts ...search.Option) Option {
	return func(o *Options) { o.Search = append(o.Search, opts...) }
}

// WithSeed seeds the random walk.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithWalkLength sets the random walk length.
func WithWalkLength(n int) Option {
	return func(o *Options) { o.WalkLength = n }
}

type factory func(o Options) (search.Pathfinder, error)

var registry = map[string]factory{
	bfs.Name:   func(o Options) (search.Pathfinder, error) { return bfs.New(o.Search...), nil },
	dfs.Name:   func(o Options) (search.Pathfinder, error) { return dfs.New(o.Search...), nil },
	ucs.Name:   func(o Options) (search.Pathfinder, error) { return ucs.New(o.Search...), nil },
	astar.Name: func(o Options) (search.Pathfinder, error) { return astar.New(o.Search...), nil },
	randwalk.Name: func(o Options) (search.Pathfinder, error) {
		var ropts []randwalk.Option
		if o.Seed != 0 {
			ropts = append(ropts, randwalk.WithSeed(o.Seed))
		}
		if o.WalkLength > 0 {
			ropts = append(ropts, randwalk.WithPathLength(o.WalkLength))
		}
		return randwalk.New(ropts...)
	},
}

// Lookup returns a new pathfinder for name.
func Lookup(name string, opts ...Option) (search.Pathfinder, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return f(o)
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Searches returns the names of the strategies that honour the target, in
// sorted order.
func Searches() []string {
	return []string{astar.Name, bfs.Name, dfs.Name, ucs.Name}
}
