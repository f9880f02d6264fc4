package randwalk

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/search"
)

// Name is the registry name of this strategy.
const Name = "random"

// DefaultPathLength is the number of steps of one walk.
const DefaultPathLength = 7

// ErrOptionViolation is returned by New for an invalid option.
var ErrOptionViolation = errors.New("randwalk: invalid option supplied")

// Option configures a Walker.
type Option func(*Walker)

// WithSeed seeds a private source.
func WithSeed(seed int64) Option {
	return func(w *Walker) { w.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand uses r. The Walker serialises access to it.
func WithRand(r *rand.Rand) Option {
	return func(w *Walker) {
		if r != nil {
			w.rng = r
		}
	}
}

// WithPathLength sets the number of steps; n must be ≥ 1.
func WithPathLength(n int) Option {
	return func(w *Walker) {
		if n < 1 {
			w.err = fmt.Errorf("%w: path length must be ≥ 1 (%d)", ErrOptionViolation, n)
			return
		}
		w.length = n
	}
}

// Walker is a search.Pathfinder producing random walks.
type Walker struct {
	mu     sync.Mutex
	rng    *rand.Rand
	length int
	err    error
}

// New returns a Walker. Without WithSeed or WithRand it is seeded from the clock.
func New(opts ...Option) (*Walker, error) {
	w := &Walker{length: DefaultPathLength}
	for _, opt := range opts {
		opt(w)
	}
	if w.err != nil {
		return nil, w.err
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return w, nil
}

// Search implements search.Pathfinder. target may be the zero Location.
func (w *Walker) Search(ctx context.Context, g *maze.Graph, start, target maze.Location) (search.Result, error) {
	if target.IsZero() {
		target = start
	}
	b, err := search.Prepare(g, start, target)
	if err != nil {
		return search.Result{}, err
	}
	if err = search.Canceled(ctx); err != nil {
		return search.Result{}, err
	}

	res := search.Result{
		Path:     append(make([]*maze.Node, 0, w.length+2), start.Nodes()...),
		Expanded: append(make([]*maze.Node, 0, w.length+1), b.Origin),
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	cur := b.Origin
	for i := 0; i < w.length; i++ {
		nbs := g.Neighbors(cur)
		if len(nbs) == 0 {
			break
		}
		cur = nbs[w.rng.Intn(len(nbs))].Node
		res.Path = append(res.Path, cur)
		res.Expanded = append(res.Expanded, cur)
	}
	return res, nil
}

// Name implements search.Named.
func (w *Walker) Name() string { return Name }
